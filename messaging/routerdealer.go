package messaging

import (
	"sync"

	zmq "github.com/pebbe/zmq4"
	"github.com/pkg/errors"
	"github.com/uofuseismo/umps/message"
)

// Router and Dealer are the forwarding halves of the (Router, Dealer)
// proxy pair. Frames are
// [client_identity, empty_delimiter, type_name, payload], and neither
// side interprets them -- application-level request handling happens in
// a Reply worker connected to the Dealer's bound address, not inside
// these primitives.
type Router struct {
	mu      sync.Mutex
	ctx     *Context
	socket  *zmq.Socket
	details message.SocketDetails
	init    bool
}

// NewRouter allocates an uninitialized Router on ctx.
func NewRouter(ctx *Context) (*Router, error) {
	socket, err := ctx.raw().NewSocket(zmq.ROUTER)
	if err != nil {
		return nil, errors.Wrap(err, "creating ROUTER socket")
	}
	return &Router{socket: socket, ctx: ctx.Retain()}, nil
}

// Initialize validates options, applies ZAP, and binds.
func (r *Router) Initialize(options SocketOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.init {
		return ErrAlreadyInitialized
	}
	if err := options.Validate(); err != nil {
		return err
	}
	address, err := bindOrConnect(r.socket, options)
	if err != nil {
		return err
	}
	r.details = socketDetails(address, message.SocketRouter, options.ConnectOrBind, options.ZAP, message.ReadOnly)
	r.init = true
	return nil
}

func (r *Router) IsInitialized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.init
}

func (r *Router) SocketDetails() message.SocketDetails {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.details
}

// Raw exposes the underlying socket for wiring into a Proxy shovel.
func (r *Router) Raw() *zmq.Socket { return r.socket }

// Disconnect releases the transport endpoint and the shared context.
func (r *Router) Disconnect() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	err := r.socket.Close()
	r.ctx.Release()
	r.init = false
	return err
}

// Dealer is the backend half of a (Router, Dealer) proxy pair. Reply
// workers connect to its bound address to actually answer requests;
// the Dealer itself only forwards "no frame is ever
// interpreted".
type Dealer struct {
	mu      sync.Mutex
	ctx     *Context
	socket  *zmq.Socket
	details message.SocketDetails
	init    bool
}

// NewDealer allocates an uninitialized Dealer on ctx.
func NewDealer(ctx *Context) (*Dealer, error) {
	socket, err := ctx.raw().NewSocket(zmq.DEALER)
	if err != nil {
		return nil, errors.Wrap(err, "creating DEALER socket")
	}
	return &Dealer{socket: socket, ctx: ctx.Retain()}, nil
}

func (d *Dealer) Initialize(options SocketOptions) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.init {
		return ErrAlreadyInitialized
	}
	if err := options.Validate(); err != nil {
		return err
	}
	address, err := bindOrConnect(d.socket, options)
	if err != nil {
		return err
	}
	d.details = socketDetails(address, message.SocketDealer, options.ConnectOrBind, options.ZAP, message.ReadOnly)
	d.init = true
	return nil
}

func (d *Dealer) IsInitialized() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.init
}

func (d *Dealer) SocketDetails() message.SocketDetails {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.details
}

// Raw exposes the underlying socket for wiring into a Proxy shovel.
func (d *Dealer) Raw() *zmq.Socket { return d.socket }

// Disconnect releases the transport endpoint and the shared context.
func (d *Dealer) Disconnect() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	err := d.socket.Close()
	d.ctx.Release()
	d.init = false
	return err
}
