// Package messaging implements the composable socket primitives:
// publisher/subscriber, xpublisher/xsubscriber, request/reply, and
// router/dealer, each wrapping one ZeroMQ socket and enforcing its
// pattern's state machine.
package messaging

import (
	"context"
	"sync"

	zmq "github.com/pebbe/zmq4"
	"github.com/pkg/errors"
	"github.com/uofuseismo/umps/authentication"
	"github.com/uofuseismo/umps/logging"
)

// Context is a refcounted wrapper around a zmq.Context: sockets that
// must cooperate (e.g. inside one proxy) share a Context, and the
// Context outlives every socket derived from it.
type Context struct {
	mu      sync.Mutex
	zctx    *zmq.Context
	refs    int
	zap     *authentication.Service
	zapRefs int
}

// NewContext allocates a fresh libzmq context.
func NewContext() (*Context, error) {
	zctx, err := zmq.NewContext()
	if err != nil {
		return nil, errors.Wrap(err, "allocating zmq context")
	}
	return &Context{zctx: zctx, refs: 1}, nil
}

// Retain increments the reference count, returning the same Context for
// chaining into constructors that take ownership of a reference.
func (c *Context) Retain() *Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refs++
	return c
}

// Release decrements the reference count, terminating the underlying
// zmq.Context once no socket still holds a reference.
func (c *Context) Release() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refs--
	if c.refs > 0 {
		return nil
	}
	if c.zap != nil {
		c.zap.Stop()
		c.zap = nil
		c.zapRefs = 0
	}
	return c.zctx.Term()
}

func (c *Context) raw() *zmq.Context { return c.zctx }

// StartZAP starts, or attaches an additional reference to, the single
// authentication.Service bound to this Context's inproc ZAP endpoint.
// libzmq resolves inproc://zeromq.zap.01 per zmq.Context rather than
// per socket, so every proxy/broadcast/service composite sharing this
// Context must share one ZAP service rather than each binding its own
// (the second bind would fail with "address already in use"). Each
// successful call must be matched by exactly one StopZAP call.
func (c *Context) StartZAP(ctx context.Context, authenticator authentication.Authenticator, log logging.Logger) (*authentication.Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.zap != nil {
		c.zapRefs++
		return c.zap, nil
	}
	service := authentication.NewService("zap", authenticator, log)
	if err := service.Start(ctx, c.zctx); err != nil {
		return nil, err
	}
	c.zap = service
	c.zapRefs = 1
	return service, nil
}

// StopZAP releases one reference acquired by StartZAP, stopping the
// shared ZAP service once every caller has released its reference.
func (c *Context) StopZAP() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.zap == nil {
		return nil
	}
	c.zapRefs--
	if c.zapRefs > 0 {
		return nil
	}
	err := c.zap.Stop()
	c.zap = nil
	return err
}
