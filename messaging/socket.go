package messaging

import (
	zmq "github.com/pebbe/zmq4"
	"github.com/pkg/errors"
	"github.com/uofuseismo/umps/authentication"
	"github.com/uofuseismo/umps/message"
)

// ErrAlreadyInitialized is returned by Initialize when called twice.
var ErrAlreadyInitialized = errors.New("socket is already initialized")

// ErrNotInitialized is returned by an I/O method called before Initialize.
var ErrNotInitialized = errors.New("socket is not initialized")

// ErrInvalidOptions is returned when SocketOptions fail validation.
var ErrInvalidOptions = errors.New("invalid socket options")

// SocketOptions is the common initialization contract for every socket
// primitive: an address to bind or connect, ZAP materials, and
// high-water marks.
type SocketOptions struct {
	Address              string
	ConnectOrBind        message.ConnectOrBind
	ZAP                  authentication.ZAPOptions
	SendHighWaterMark    int
	ReceiveHighWaterMark int
}

// Validate checks the high-water marks and delegates ZAP validation to
// the embedded ZAPOptions. A high-water mark of 0 means unbounded
// queueing; anything negative is rejected.
func (o SocketOptions) Validate() error {
	if o.Address == "" {
		return errors.Wrap(ErrInvalidOptions, "address must not be empty")
	}
	if o.SendHighWaterMark < 0 || o.ReceiveHighWaterMark < 0 {
		return errors.Wrap(ErrInvalidOptions, "high-water marks must not be negative")
	}
	if err := o.ZAP.Validate(); err != nil {
		return errors.Wrap(err, "invalid zap options")
	}
	return nil
}

// applyZAP configures the curve/plain mechanism on socket before it is
// bound or connected "applies ZAP settings to the
// socket before binding/connecting".
func applyZAP(socket *zmq.Socket, options authentication.ZAPOptions) error {
	switch options.Level {
	case authentication.Grasslands:
		return nil
	case authentication.Strawhouse:
		return socket.SetZapDomain(options.Domain)
	case authentication.Woodhouse:
		if err := socket.SetZapDomain(options.Domain); err != nil {
			return err
		}
		if options.Role == authentication.Client {
			if err := socket.SetPlainUsername(options.Credentials.User); err != nil {
				return err
			}
			return socket.SetPlainPassword(options.Credentials.Password)
		}
		return socket.SetPlainServer(1)
	case authentication.Stonehouse:
		if err := socket.SetZapDomain(options.Domain); err != nil {
			return err
		}
		if options.Role == authentication.Server {
			if err := socket.SetCurveServer(1); err != nil {
				return err
			}
			return socket.SetCurveSecretkey(options.ServerKeys.PrivateKeyText())
		}
		if err := socket.SetCurveServerkey(options.ServerKeys.PublicKeyText()); err != nil {
			return err
		}
		if err := socket.SetCurvePublickey(options.ClientKeys.PublicKeyText()); err != nil {
			return err
		}
		return socket.SetCurveSecretkey(options.ClientKeys.PrivateKeyText())
	default:
		return errors.New("unknown zap security level")
	}
}

// bindOrConnect applies options to socket and binds or connects to
// address, returning the address actually in effect (wildcard ports are
// expanded by libzmq; LastEndpoint recovers the concrete value).
func bindOrConnect(socket *zmq.Socket, options SocketOptions) (string, error) {
	if err := applyZAP(socket, options.ZAP); err != nil {
		return "", errors.Wrap(err, "applying zap settings")
	}
	if err := socket.SetSndhwm(options.SendHighWaterMark); err != nil {
		return "", errors.Wrap(err, "setting send high-water mark")
	}
	if err := socket.SetRcvhwm(options.ReceiveHighWaterMark); err != nil {
		return "", errors.Wrap(err, "setting receive high-water mark")
	}

	switch options.ConnectOrBind {
	case message.Bind:
		if err := socket.Bind(options.Address); err != nil {
			return "", errors.Wrap(err, "binding socket")
		}
	case message.Connect:
		if err := socket.Connect(options.Address); err != nil {
			return "", errors.Wrap(err, "connecting socket")
		}
	}

	endpoint, err := socket.GetLastEndpoint()
	if err != nil || endpoint == "" {
		return options.Address, nil
	}
	return endpoint, nil
}

// socketDetails builds the SocketDetails report for one half of a
// primitive.
func socketDetails(address string, socketType message.SocketType, connectOrBind message.ConnectOrBind, options authentication.ZAPOptions, minPrivileges message.Privileges) message.SocketDetails {
	return message.SocketDetails{
		Address:       address,
		SocketType:    socketType,
		ConnectOrBind: connectOrBind,
		SecurityLevel: options.Level,
		MinPrivileges: minPrivileges,
	}
}
