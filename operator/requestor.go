package operator

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/uofuseismo/umps/message"
	"github.com/uofuseismo/umps/messaging"
	"golang.org/x/net/trace"
)

// DefaultRequestTimeout is the Requestor's default timeout: one request
// with a 5-second default timeout.
const DefaultRequestTimeout = 5 * time.Second

// ErrConnectionNotFound is returned by a selector when name has no
// catalogue entry, or the entry is not the expected ConnectionType.
var ErrConnectionNotFound = errors.New("connection not found in catalogue")

// Requestor is the connection-information directory's client.
type Requestor struct {
	request *messaging.Request
}

// NewRequestor wraps an initialized messaging.Request bound to the
// operator's well-known address.
func NewRequestor(request *messaging.Request) *Requestor {
	return &Requestor{request: request}
}

// AvailableConnections fetches the full catalogue:
// "returns the full catalogue, callers filter".
func (r *Requestor) AvailableConnections(ctx context.Context) ([]message.ConnectionDetails, error) {
	reply, err := r.request.Request(&message.AvailableConnectionsRequest{})
	if err != nil {
		return nil, errors.Wrap(err, "requesting available connections")
	}
	response, ok := reply.(*message.AvailableConnectionsResponse)
	if !ok {
		return nil, errors.New("unexpected reply type from operator")
	}
	if tr, ok := trace.FromContext(ctx); ok {
		tr.LazyPrintf("AvailableConnections() => %d entries, code=%v", len(response.Details), response.ReturnCode)
	}
	if response.ReturnCode != message.Success {
		return nil, errors.Errorf("operator returned code %v", response.ReturnCode)
	}
	return response.Details, nil
}

func (r *Requestor) find(ctx context.Context, name string, connectionType message.ConnectionType) (message.ConnectionDetails, error) {
	all, err := r.AvailableConnections(ctx)
	if err != nil {
		return message.ConnectionDetails{}, err
	}
	for _, details := range all {
		if details.Name == name && details.ConnectionType == connectionType {
			return details, nil
		}
	}
	return message.ConnectionDetails{}, ErrConnectionNotFound
}

// ProxyBroadcastFrontend returns the frontend (XSub) address of the named
// broadcast, for a publisher to connect to.
func (r *Requestor) ProxyBroadcastFrontend(ctx context.Context, name string) (string, error) {
	details, err := r.find(ctx, name, message.ConnectionBroadcast)
	if err != nil {
		return "", err
	}
	return details.SocketDetails.Frontend.Address, nil
}

// ProxyBroadcastBackend returns the backend (XPub) address of the named
// broadcast, for a subscriber to connect to.
func (r *Requestor) ProxyBroadcastBackend(ctx context.Context, name string) (string, error) {
	details, err := r.find(ctx, name, message.ConnectionBroadcast)
	if err != nil {
		return "", err
	}
	return details.SocketDetails.Backend.Address, nil
}

// ProxyServiceFrontend returns the frontend address of the named
// service, for a requestor to connect to.
func (r *Requestor) ProxyServiceFrontend(ctx context.Context, name string) (string, error) {
	details, err := r.find(ctx, name, message.ConnectionService)
	if err != nil {
		return "", err
	}
	return details.SocketDetails.Frontend.Address, nil
}

// ProxyServiceBackend returns the backend address of the named service,
// for a reply worker to connect to.
func (r *Requestor) ProxyServiceBackend(ctx context.Context, name string) (string, error) {
	details, err := r.find(ctx, name, message.ConnectionService)
	if err != nil {
		return "", err
	}
	return details.SocketDetails.Backend.Address, nil
}
