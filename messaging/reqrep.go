package messaging

import (
	"sync"
	"time"

	zmq "github.com/pebbe/zmq4"
	"github.com/pkg/errors"
	"github.com/uofuseismo/umps/message"
	"github.com/uofuseismo/umps/task"
)

// ErrRequestTimedOut is returned by Request when no reply arrived within
// ReceiveTimeout; the socket has already been torn down and rebuilt.
var ErrRequestTimedOut = errors.New("request timed out waiting for reply")

// Request is a strict-alternation req socket: on
// timeout the socket is torn down and rebuilt to discard the dangling
// reply, since REQ cannot resynchronize any other way (see the
// Open Question decision in the design ledger).
type Request struct {
	mu             sync.Mutex
	ctx            *Context
	socket         *zmq.Socket
	registry       *message.Registry
	options        SocketOptions
	details        message.SocketDetails
	receiveTimeout time.Duration
	init           bool
}

// NewRequest allocates an uninitialized Request looking up reply types
// in registry.
func NewRequest(ctx *Context, registry *message.Registry, receiveTimeout time.Duration) (*Request, error) {
	return &Request{ctx: ctx.Retain(), registry: registry, receiveTimeout: receiveTimeout}, nil
}

// Initialize validates options, applies ZAP, and connects.
func (r *Request) Initialize(options SocketOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.init {
		return ErrAlreadyInitialized
	}
	if err := options.Validate(); err != nil {
		return err
	}
	r.options = options
	return r.open()
}

// open creates and connects a fresh REQ socket using the last-validated
// options. Callers must hold r.mu.
func (r *Request) open() error {
	socket, err := r.ctx.raw().NewSocket(zmq.REQ)
	if err != nil {
		return errors.Wrap(err, "creating REQ socket")
	}
	address, err := bindOrConnect(socket, r.options)
	if err != nil {
		socket.Close()
		return err
	}
	r.socket = socket
	r.details = socketDetails(address, message.SocketRequest, r.options.ConnectOrBind, r.options.ZAP, message.ReadOnly)
	r.init = true
	return nil
}

func (r *Request) IsInitialized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.init
}

func (r *Request) SocketDetails() message.SocketDetails {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.details
}

// Request sends msg and blocks for a reply, honouring the configured
// receive timeout. On timeout the socket is torn down and rebuilt.
func (r *Request) Request(msg message.Message) (message.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.init {
		return nil, ErrNotInitialized
	}

	payload, err := msg.ToWire()
	if err != nil {
		return nil, errors.Wrap(err, "encoding request")
	}
	if _, err := r.socket.SendMessage(msg.TypeName(), payload); err != nil {
		return nil, errors.Wrap(err, "sending request")
	}

	if r.receiveTimeout >= 0 {
		poller := zmq.NewPoller()
		poller.Add(r.socket, zmq.POLLIN)
		polled, err := poller.Poll(r.receiveTimeout)
		if err != nil {
			return nil, errors.Wrap(err, "polling for reply")
		}
		if len(polled) == 0 {
			r.rebuildLocked()
			return nil, ErrRequestTimedOut
		}
	}

	frames, err := r.socket.RecvMessage(0)
	if err != nil {
		return nil, errors.Wrap(err, "receiving reply")
	}
	if len(frames) != 2 {
		return nil, errors.New("malformed reply frame sequence")
	}

	typeName, replyPayload := frames[0], []byte(frames[1])
	instance, err := r.registry.Get(typeName)
	if err != nil {
		return nil, err
	}
	if err := instance.FromWire(replyPayload); err != nil {
		return nil, errors.Wrap(err, "decoding reply")
	}
	return instance, nil
}

// rebuildLocked closes the current socket and opens a fresh one on the
// same options. Callers must hold r.mu.
func (r *Request) rebuildLocked() {
	if r.socket != nil {
		r.socket.Close()
	}
	r.init = false
	if err := r.open(); err != nil {
		// Leaves the Request uninitialized; the next Request() call
		// reports ErrNotInitialized rather than panicking.
		r.init = false
	}
}

// Disconnect releases the transport endpoint and the shared context.
func (r *Request) Disconnect() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var err error
	if r.socket != nil {
		err = r.socket.Close()
	}
	r.ctx.Release()
	r.init = false
	return err
}

// ReplyCallback handles one decoded request and returns the Message to
// send back as the reply.
type ReplyCallback func(typeName string, payload []byte) message.Message

// Reply is a callback-driven req/rep server loop:
// Initialize receives a callback; Start repeatedly receives a request,
// invokes the callback, and sends the returned message as the reply.
// A callback panic is recovered and turned into a Failure reply rather
// than propagated.
type Reply struct {
	mu       sync.Mutex
	ctx      *Context
	socket   *zmq.Socket
	callback ReplyCallback
	details  message.SocketDetails
	group    *task.Group
	init     bool
}

// NewReply allocates an uninitialized Reply on ctx.
func NewReply(ctx *Context) (*Reply, error) {
	socket, err := ctx.raw().NewSocket(zmq.REP)
	if err != nil {
		return nil, errors.Wrap(err, "creating REP socket")
	}
	return &Reply{socket: socket, ctx: ctx.Retain()}, nil
}

// Initialize validates options, applies ZAP, binds, and records the
// callback to invoke for each request.
func (s *Reply) Initialize(options SocketOptions, callback ReplyCallback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.init {
		return ErrAlreadyInitialized
	}
	if err := options.Validate(); err != nil {
		return err
	}
	if callback == nil {
		return errors.Wrap(ErrInvalidOptions, "callback must not be nil")
	}
	address, err := bindOrConnect(s.socket, options)
	if err != nil {
		return err
	}
	s.details = socketDetails(address, message.SocketReply, options.ConnectOrBind, options.ZAP, message.ReadOnly)
	s.callback = callback
	s.init = true
	return nil
}

func (s *Reply) IsInitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.init
}

func (s *Reply) SocketDetails() message.SocketDetails {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.details
}

// Start begins the receive/callback/send loop in a background goroutine.
func (s *Reply) Start(group *task.Group, name string) error {
	s.mu.Lock()
	if !s.init {
		s.mu.Unlock()
		return ErrNotInitialized
	}
	s.group = group
	s.mu.Unlock()

	group.Queue(name, s.serve)
	return nil
}

func (s *Reply) serve() error {
	// Poll with a short timeout rather than blocking in RecvMessage, so a
	// cancelled group is noticed even when no request arrives.
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
			continue
		}
		if len(frames) != 2 {
			continue
		}

		reply := s.invokeCallback(frames[0], []byte(frames[1]))
		payload, err := reply.ToWire()
		if err != nil {
			failure := message.NewFailure(err)
			payload, _ = failure.ToWire()
			s.socket.SendMessage(failure.TypeName(), payload)
			continue
		}
		s.socket.SendMessage(reply.TypeName(), payload)
	}
}

func (s *Reply) invokeCallback(typeName string, payload []byte) (reply message.Message) {
	defer func() {
		if recovered := recover(); recovered != nil {
			reply = message.NewFailure(errors.Errorf("callback panic: %v", recovered))
		}
	}()
	return s.callback(typeName, payload)
}

// Disconnect releases the transport endpoint and the shared context.
func (s *Reply) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.socket.Close()
	s.ctx.Release()
	s.init = false
	return err
}
