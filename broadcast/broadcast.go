// Package broadcast implements the Broadcast composite: a Proxy over
// (XSub, XPub) plus an authentication service, named for the
// connection-information directory.
package broadcast

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/uofuseismo/umps/authentication"
	"github.com/uofuseismo/umps/logging"
	"github.com/uofuseismo/umps/message"
	"github.com/uofuseismo/umps/messaging"
	"github.com/uofuseismo/umps/proxy"
	"github.com/uofuseismo/umps/task"
)

// ErrAlreadyInitialized is returned by Initialize when called twice.
var ErrAlreadyInitialized = errors.New("broadcast is already initialized")

// ErrNotInitialized is returned by Start before Initialize.
var ErrNotInitialized = errors.New("broadcast is not initialized")

// Broadcast pairs an XSub/XPub Proxy with an authentication.Service.
// Names are the wire advertising key used by the connection-information
// directory.
type Broadcast struct {
	name string

	mu            sync.Mutex
	ctx           *messaging.Context
	frontend      *messaging.XSubscriber
	backend       *messaging.XPublisher
	proxy         *proxy.Proxy
	authenticator authentication.Authenticator
	log           logging.Logger
	group         *task.Group
	init          bool
	stoppingCh    chan struct{}
}

// New returns an uninitialized Broadcast identified by name.
func New(name string) *Broadcast {
	return &Broadcast{name: name}
}

// Name returns the wire advertising key.
func (b *Broadcast) Name() string { return b.name }

// Initialize wires the frontend XSub, backend XPub, and the
// authenticator that protects them.
func (b *Broadcast) Initialize(ctx *messaging.Context, frontendOptions, backendOptions messaging.SocketOptions, authenticator authentication.Authenticator, log logging.Logger) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.init {
		return ErrAlreadyInitialized
	}

	frontend, err := messaging.NewXSubscriber(ctx)
	if err != nil {
		return errors.Wrap(err, "creating xsub frontend")
	}
	if err := frontend.Initialize(frontendOptions); err != nil {
		return errors.Wrap(err, "initializing xsub frontend")
	}

	backend, err := messaging.NewXPublisher(ctx)
	if err != nil {
		frontend.Disconnect()
		return errors.Wrap(err, "creating xpub backend")
	}
	if err := backend.Initialize(backendOptions); err != nil {
		frontend.Disconnect()
		backend.Disconnect()
		return errors.Wrap(err, "initializing xpub backend")
	}

	p := proxy.New()
	if err := p.Initialize(frontend, backend); err != nil {
		frontend.Disconnect()
		backend.Disconnect()
		return errors.Wrap(err, "initializing proxy")
	}

	b.ctx = ctx
	b.frontend = frontend
	b.backend = backend
	b.proxy = p
	b.authenticator = authenticator
	b.log = log
	b.init = true
	return nil
}

// IsInitialized reports whether Initialize has succeeded.
func (b *Broadcast) IsInitialized() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.init
}

// IsRunning reports whether the underlying proxy is shoveling.
func (b *Broadcast) IsRunning() bool {
	b.mu.Lock()
	p := b.proxy
	b.mu.Unlock()
	return p != nil && p.IsRunning()
}

// ConnectionDetails reports the (frontend, backend) socket pair.
func (b *Broadcast) ConnectionDetails() (message.ProxySocketDetails, error) {
	b.mu.Lock()
	p := b.proxy
	b.mu.Unlock()
	if p == nil {
		return message.ProxySocketDetails{}, ErrNotInitialized
	}
	return p.SocketDetails()
}

// Start attaches to the Context's shared ZAP authentication service,
// then starts the proxy. The ZAP readiness signal from StartZAP removes
// the need for a band-aid sleep between the two.
func (b *Broadcast) Start(ctx context.Context) error {
	b.mu.Lock()
	if !b.init {
		b.mu.Unlock()
		return ErrNotInitialized
	}
	b.group = task.NewGroup(ctx)
	b.stoppingCh = make(chan struct{})
	zmqCtx, authenticator, log, p := b.ctx, b.authenticator, b.log, b.proxy
	b.mu.Unlock()

	if _, err := zmqCtx.StartZAP(ctx, authenticator, log); err != nil {
		return errors.Wrap(err, "starting authentication service")
	}

	if err := p.Start(b.group); err != nil {
		zmqCtx.StopZAP()
		return errors.Wrap(err, "starting proxy")
	}
	return nil
}

// Stopping returns a channel closed when Stop begins, letting callers
// react before the proxy and authentication service actually tear down.
func (b *Broadcast) Stopping() <-chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stoppingCh
}

// Stop stops the proxy, then releases this Broadcast's reference to the
// shared authentication service -- the reverse of Start's order.
func (b *Broadcast) Stop() error {
	b.mu.Lock()
	if !b.init {
		b.mu.Unlock()
		return nil
	}
	if b.stoppingCh != nil {
		close(b.stoppingCh)
	}
	p, zmqCtx := b.proxy, b.ctx
	b.mu.Unlock()

	proxyErr := p.Stop()
	authErr := zmqCtx.StopZAP()
	if proxyErr != nil {
		return proxyErr
	}
	return authErr
}
