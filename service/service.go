// Package service implements the ProxyService composite: a Proxy over
// (Router, Dealer) plus an authentication service, named for the
// connection-information directory.
package service

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
var ErrAlreadyInitialized = errors.New("service is already initialized")

// ErrNotInitialized is returned by Start before Initialize.
var ErrNotInitialized = errors.New("service is not initialized")

// ProxyService pairs a Router/Dealer Proxy with an authentication.Service.
type ProxyService struct {
	name string

	mu            sync.Mutex
	ctx           *messaging.Context
	frontend      *messaging.Router
	backend       *messaging.Dealer
	proxy         *proxy.Proxy
	authenticator authentication.Authenticator
	log           logging.Logger
	group         *task.Group
	init          bool
	stoppingCh    chan struct{}
}

// New returns an uninitialized ProxyService identified by name.
func New(name string) *ProxyService {
	return &ProxyService{name: name}
}

// Name returns the wire advertising key.
func (s *ProxyService) Name() string { return s.name }

// Initialize wires the frontend Router (which external clients address
// directly) and the backend Dealer (whose bound address Reply workers
// connect to in order to actually answer requests -- both sockets only
// forward; see messaging.Router/Dealer), plus the authenticator that
// protects them.
func (s *ProxyService) Initialize(ctx *messaging.Context, frontendOptions, backendOptions messaging.SocketOptions, authenticator authentication.Authenticator, log logging.Logger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.init {
		return ErrAlreadyInitialized
	}

	frontend, err := messaging.NewRouter(ctx)
	if err != nil {
		return errors.Wrap(err, "creating router frontend")
	}
	if err := frontend.Initialize(frontendOptions); err != nil {
		return errors.Wrap(err, "initializing router frontend")
	}

	backend, err := messaging.NewDealer(ctx)
	if err != nil {
		frontend.Disconnect()
		return errors.Wrap(err, "creating dealer backend")
	}
	if err := backend.Initialize(backendOptions); err != nil {
		frontend.Disconnect()
		backend.Disconnect()
		return errors.Wrap(err, "initializing dealer backend")
	}

	p := proxy.New()
	if err := p.Initialize(frontend, backend); err != nil {
		frontend.Disconnect()
		backend.Disconnect()
		return errors.Wrap(err, "initializing proxy")
	}

	s.ctx = ctx
	s.frontend = frontend
	s.backend = backend
	s.proxy = p
	s.authenticator = authenticator
	s.log = log
	s.init = true
	return nil
}

// IsInitialized reports whether Initialize has succeeded.
func (s *ProxyService) IsInitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.init
}

// IsRunning reports whether the underlying proxy is shoveling.
func (s *ProxyService) IsRunning() bool {
	s.mu.Lock()
	p := s.proxy
	s.mu.Unlock()
	return p != nil && p.IsRunning()
}

// ConnectionDetails reports the (frontend, backend) socket pair.
func (s *ProxyService) ConnectionDetails() (message.ProxySocketDetails, error) {
	s.mu.Lock()
	p := s.proxy
	s.mu.Unlock()
	if p == nil {
		return message.ProxySocketDetails{}, ErrNotInitialized
	}
	return p.SocketDetails()
}

// Start attaches to the Context's shared ZAP authentication service,
// then starts the proxy.
func (s *ProxyService) Start(ctx context.Context) error {
	s.mu.Lock()
	if !s.init {
		s.mu.Unlock()
		return ErrNotInitialized
	}
	s.group = task.NewGroup(ctx)
	s.stoppingCh = make(chan struct{})
	zmqCtx, authenticator, log, p := s.ctx, s.authenticator, s.log, s.proxy
	s.mu.Unlock()

	if _, err := zmqCtx.StartZAP(ctx, authenticator, log); err != nil {
		return errors.Wrap(err, "starting authentication service")
	}

	if err := p.Start(s.group); err != nil {
		zmqCtx.StopZAP()
		return errors.Wrap(err, "starting proxy")
	}
	return nil
}

// Stopping returns a channel closed when Stop begins.
func (s *ProxyService) Stopping() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stoppingCh
}

// Stop stops the proxy, then releases this ProxyService's reference to
// the shared authentication service.
func (s *ProxyService) Stop() error {
	s.mu.Lock()
	if !s.init {
		s.mu.Unlock()
		return nil
	}
	if s.stoppingCh != nil {
		close(s.stoppingCh)
	}
	p, zmqCtx := s.proxy, s.ctx
	s.mu.Unlock()

	proxyErr := p.Stop()
	authErr := zmqCtx.StopZAP()
	if proxyErr != nil {
		return proxyErr
	}
	return authErr
}
