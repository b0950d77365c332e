package messaging

import (
	"sync"
	"time"

	zmq "github.com/pebbe/zmq4"
	"github.com/pkg/errors"
	"github.com/uofuseismo/umps/message"
)

// Publisher sends Messages tagged with their own type-name as the
// pub/sub topic: frames are
// [topic_bytes, type_name_bytes, payload_bytes].
type Publisher struct {
	mu      sync.Mutex
	socket  *zmq.Socket
	ctx     *Context
	details message.SocketDetails
	init    bool
}

// NewPublisher allocates an uninitialized Publisher on ctx.
func NewPublisher(ctx *Context) (*Publisher, error) {
	socket, err := ctx.raw().NewSocket(zmq.PUB)
	if err != nil {
		return nil, errors.Wrap(err, "creating PUB socket")
	}
	return &Publisher{socket: socket, ctx: ctx.Retain()}, nil
}

// Initialize validates options, applies ZAP, and binds or connects.
func (p *Publisher) Initialize(options SocketOptions) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.init {
		return ErrAlreadyInitialized
	}
	if err := options.Validate(); err != nil {
		return err
	}
	address, err := bindOrConnect(p.socket, options)
	if err != nil {
		return err
	}
	p.details = socketDetails(address, message.SocketPublisher, options.ConnectOrBind, options.ZAP, message.ReadOnly)
	p.init = true
	return nil
}

// IsInitialized reports whether Initialize has succeeded.
func (p *Publisher) IsInitialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.init
}

// SocketDetails reports the actually-bound address and effective
// security parameters.
func (p *Publisher) SocketDetails() message.SocketDetails {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.details
}

// Send publishes msg under a topic equal to its own type-name.
func (p *Publisher) Send(msg message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.init {
		return ErrNotInitialized
	}
	payload, err := msg.ToWire()
	if err != nil {
		return errors.Wrap(err, "encoding message")
	}
	_, err = p.socket.SendMessage(msg.TypeName(), msg.TypeName(), payload)
	return err
}

// Disconnect releases the transport endpoint and the shared context.
func (p *Publisher) Disconnect() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	err := p.socket.Close()
	p.ctx.Release()
	p.init = false
	return err
}

// Subscriber receives Messages published under subscribed type-names.
type Subscriber struct {
	mu       sync.Mutex
	socket   *zmq.Socket
	ctx      *Context
	registry *message.Registry
	details  message.SocketDetails
	init     bool
}

// NewSubscriber allocates an uninitialized Subscriber looking up
// payload types in registry.
func NewSubscriber(ctx *Context, registry *message.Registry) (*Subscriber, error) {
	socket, err := ctx.raw().NewSocket(zmq.SUB)
	if err != nil {
		return nil, errors.Wrap(err, "creating SUB socket")
	}
	return &Subscriber{socket: socket, ctx: ctx.Retain(), registry: registry}, nil
}

// Initialize validates options, applies ZAP, and connects or binds.
func (s *Subscriber) Initialize(options SocketOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.init {
		return ErrAlreadyInitialized
	}
	if err := options.Validate(); err != nil {
		return err
	}
	address, err := bindOrConnect(s.socket, options)
	if err != nil {
		return err
	}
	s.details = socketDetails(address, message.SocketSubscriber, options.ConnectOrBind, options.ZAP, message.ReadOnly)
	s.init = true
	return nil
}

// IsInitialized reports whether Initialize has succeeded.
func (s *Subscriber) IsInitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.init
}

// SocketDetails reports the actually-bound address and effective
// security parameters.
func (s *Subscriber) SocketDetails() message.SocketDetails {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.details
}

// AddSubscription subscribes to messages published under typeName.
func (s *Subscriber) AddSubscription(typeName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.init {
		return ErrNotInitialized
	}
	return s.socket.SetSubscribe(typeName)
}

// RemoveSubscription cancels a prior AddSubscription.
func (s *Subscriber) RemoveSubscription(typeName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.init {
		return ErrNotInitialized
	}
	return s.socket.SetUnsubscribe(typeName)
}

// Receive waits up to timeout for a message, returning (nil, nil) on
// timeout. timeout < 0 waits indefinitely; timeout == 0 polls once.
// Unknown types are dropped (nil, nil is returned, matching the
// "logged and dropped" contract of ).
func (s *Subscriber) Receive(timeout time.Duration) (message.Message, error) {
	s.mu.Lock()
	socket := s.socket
	registry := s.registry
	init := s.init
	s.mu.Unlock()
	if !init {
		return nil, ErrNotInitialized
	}

	if timeout >= 0 {
		poller := zmq.NewPoller()
		poller.Add(socket, zmq.POLLIN)
		polled, err := poller.Poll(timeout)
		if err != nil {
			return nil, errors.Wrap(err, "polling subscriber")
		}
		if len(polled) == 0 {
			return nil, nil
		}
	}

	frames, err := socket.RecvMessage(0)
	if err != nil {
		return nil, errors.Wrap(err, "receiving message")
	}
	if len(frames) != 3 {
		return nil, errors.New("malformed publisher frame sequence")
	}

	typeName, payload := frames[1], []byte(frames[2])
	instance, err := registry.Get(typeName)
	if err != nil {
		return nil, nil
	}
	if err := instance.FromWire(payload); err != nil {
		return nil, nil
	}
	return instance, nil
}

// Disconnect releases the transport endpoint and the shared context.
func (s *Subscriber) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.socket.Close()
	s.ctx.Release()
	s.init = false
	return err
}
