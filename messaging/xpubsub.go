package messaging

import (
	"sync"

	zmq "github.com/pebbe/zmq4"
	"github.com/pkg/errors"
	"github.com/uofuseismo/umps/message"
)

// XPublisher and XSubscriber are identical to Publisher/Subscriber but
// forward subscription frames in both directions; they exist only to
// sit behind a Proxy -- application code never
// instantiates them directly.
type XPublisher struct {
	mu      sync.Mutex
	socket  *zmq.Socket
	ctx     *Context
	details message.SocketDetails
	init    bool
}

// NewXPublisher allocates an uninitialized XPublisher on ctx.
func NewXPublisher(ctx *Context) (*XPublisher, error) {
	socket, err := ctx.raw().NewSocket(zmq.XPUB)
	if err != nil {
		return nil, errors.Wrap(err, "creating XPUB socket")
	}
	return &XPublisher{socket: socket, ctx: ctx.Retain()}, nil
}

// Initialize validates options, applies ZAP, and binds or connects.
func (p *XPublisher) Initialize(options SocketOptions) error {
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
	p.details = socketDetails(address, message.SocketXPublisher, options.ConnectOrBind, options.ZAP, message.ReadOnly)
	p.init = true
	return nil
}

func (p *XPublisher) IsInitialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.init
}

func (p *XPublisher) SocketDetails() message.SocketDetails {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.details
}

// Raw exposes the underlying socket for wiring into a Proxy shovel.
func (p *XPublisher) Raw() *zmq.Socket { return p.socket }

func (p *XPublisher) Disconnect() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	err := p.socket.Close()
	p.ctx.Release()
	p.init = false
	return err
}

// XSubscriber is the frontend half of a broadcast proxy.
type XSubscriber struct {
	mu      sync.Mutex
	socket  *zmq.Socket
	ctx     *Context
	details message.SocketDetails
	init    bool
}

// NewXSubscriber allocates an uninitialized XSubscriber on ctx.
func NewXSubscriber(ctx *Context) (*XSubscriber, error) {
	socket, err := ctx.raw().NewSocket(zmq.XSUB)
	if err != nil {
		return nil, errors.Wrap(err, "creating XSUB socket")
	}
	return &XSubscriber{socket: socket, ctx: ctx.Retain()}, nil
}

func (s *XSubscriber) Initialize(options SocketOptions) error {
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
	s.details = socketDetails(address, message.SocketXSubscriber, options.ConnectOrBind, options.ZAP, message.ReadOnly)
	s.init = true
	return nil
}

func (s *XSubscriber) IsInitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.init
}

func (s *XSubscriber) SocketDetails() message.SocketDetails {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.details
}

// Raw exposes the underlying socket for wiring into a Proxy shovel.
func (s *XSubscriber) Raw() *zmq.Socket { return s.socket }

func (s *XSubscriber) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.socket.Close()
	s.ctx.Release()
	s.init = false
	return err
}
