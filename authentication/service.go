package authentication

import (
	"context"
	"sync"
	"time"

	zmq "github.com/pebbe/zmq4"
	"github.com/pkg/errors"
	"github.com/uofuseismo/umps/logging"
	"github.com/uofuseismo/umps/task"
)

// ZAPEndpoint is libzmq's well-known inproc ZAP handler address; binding
// a REP socket here makes the process's ZAP handshakes flow through it.
const ZAPEndpoint = "inproc://zeromq.zap.01"

const zapVersion = "1.0"

// Service is a single-threaded task bound to the transport's well-known
// ZAP endpoint: each request is parsed as a ZAP request,
// handed to an Authenticator, and answered with
// {status-code, status-text, user-id, metadata}.
type Service struct {
	name          string
	authenticator Authenticator
	log           logging.Logger

	mu      sync.Mutex
	socket  *zmq.Socket
	ready   chan struct{}
	group   *task.Group
	running bool
}

// NewService returns a Service that dispatches ZAP requests to
// authenticator.
func NewService(name string, authenticator Authenticator, log logging.Logger) *Service {
	if log == nil {
		log = logging.NewDiscard()
	}
	return &Service{name: name, authenticator: authenticator, log: logging.WithName(log, name)}
}

// ErrAlreadyRunning is returned by Start when the service is already bound.
var ErrAlreadyRunning = errors.New("authentication service is already running")

// Start binds the ZAP REP socket on zctx and begins servicing requests
// in a background goroutine. zctx must be the same *zmq.Context every
// other socket in the process was created on: libzmq resolves
// inproc://zeromq.zap.01 per zmq.Context, so a ZAP REP socket bound on
// a different context never sees handshakes from this one. Start
// returns only once the socket is bound and able to accept requests --
// the caller never needs a band-aid sleep before starting the proxy
// behind it.
func (s *Service) Start(ctx context.Context, zctx *zmq.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}

	socket, err := zctx.NewSocket(zmq.REP)
	if err != nil {
		s.mu.Unlock()
		return errors.Wrap(err, "creating ZAP REP socket")
	}
	if err := socket.Bind(ZAPEndpoint); err != nil {
		socket.Close()
		s.mu.Unlock()
		return errors.Wrap(err, "binding ZAP endpoint")
	}

	s.socket = socket
	s.group = task.NewGroup(ctx)
	s.ready = make(chan struct{})
	s.running = true
	s.mu.Unlock()

	s.group.Queue("zap-service-"+s.name, s.serve)
	close(s.ready)
	return nil
}

// Stop cancels the service loop, waits for it to exit, and then closes
// the ZAP socket.
func (s *Service) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	group := s.group
	socket := s.socket
	s.running = false
	s.mu.Unlock()

	group.Cancel()
	err := group.Wait()
	socket.Close()
	return err
}

func (s *Service) serve() error {
	// Poll with a short timeout rather than blocking in RecvMessage, so a
	// cancelled group is noticed even when no ZAP request arrives.
	const pollInterval = 50 * time.Millisecond
	poller := zmq.NewPoller()
	poller.Add(s.socket, zmq.POLLIN)
	for {
		select {
		case <-s.group.Context().Done():
			return nil
		default:
		}

		polled, err := poller.Poll(pollInterval)
		if err != nil || len(polled) == 0 {
			continue
		}

		frames, err := s.socket.RecvMessage(0)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			s.log.Warnf("zap recv failed: %v", err)
			continue
		}

		requestID, request, err := parseZAPRequest(frames)
		if err != nil {
			s.log.Warnf("malformed zap request: %v", err)
			continue
		}

		action := s.authenticator.Authenticate(request)
		reply := buildZAPReply(requestID, request, action)
		if _, err := s.socket.SendMessage(reply); err != nil {
			s.log.Warnf("zap send failed: %v", err)
		}
	}
}

// parseZAPRequest decodes the ZAP frame sequence defined by the ZMQ RFC
// 27 handshake: version, request-id, domain, address, identity,
// mechanism, then mechanism-specific credential frames.
func parseZAPRequest(frames []string) (string, Request, error) {
	if len(frames) < 6 {
		return "", Request{}, errors.New("zap request has too few frames")
	}
	requestID := frames[1]
	request := Request{
		Domain:    frames[2],
		Address:   frames[3],
		Mechanism: frames[5],
	}
	switch request.Mechanism {
	case "NULL":
	case "PLAIN":
		if len(frames) < 8 {
			return "", Request{}, errors.New("plain zap request missing credential frames")
		}
		request.User = frames[6]
		request.Password = frames[7]
	case "CURVE":
		if len(frames) < 7 {
			return "", Request{}, errors.New("curve zap request missing public key frame")
		}
		// libzmq hands this frame over as 32 raw binary bytes, but every
		// allowlisted key in a UserStore is kept in 40-character Z85 text
		// (the form GenerateKeyPair/NewPublicKey produce), so the two
		// must be normalized to one representation before comparison.
		request.PublicKey = zmq.Z85encode(frames[6])
	default:
		return "", Request{}, errors.Errorf("unsupported zap mechanism %q", request.Mechanism)
	}
	return requestID, request, nil
}

func buildZAPReply(requestID string, request Request, action Action) []string {
	statusCode, statusText := "400", "Denied"
	if action == Allow {
		statusCode, statusText = "200", "OK"
	}
	userID := request.User
	if userID == "" {
		userID = request.PublicKey
	}
	return []string{zapVersion, requestID, statusCode, statusText, userID, ""}
}
