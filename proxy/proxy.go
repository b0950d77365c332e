// Package proxy implements the proxy engine: shoveling frames between
// two opposing sockets without ever interpreting them.
package proxy

import (
	"sync"
	"sync/atomic"

	zmq "github.com/pebbe/zmq4"
	"github.com/pkg/errors"
	"github.com/uofuseismo/umps/message"
	"github.com/uofuseismo/umps/task"
)

// Socket is the minimal surface a primitive must expose to sit behind a
// Proxy: the raw socket to shovel, and its reported details.
type Socket interface {
	Raw() *zmq.Socket
	SocketDetails() message.SocketDetails
	Disconnect() error
}

// ErrIncompatiblePair is returned when the frontend/backend socket types
// are not one of the pairs Proxy allows.
var ErrIncompatiblePair = errors.New("incompatible frontend/backend socket pair")

// ErrAlreadyInitialized is returned by Initialize when called twice
// without an intervening Stop.
var ErrAlreadyInitialized = errors.New("proxy is already initialized")

// ErrNotInitialized is returned by Start/SocketDetails before Initialize.
var ErrNotInitialized = errors.New("proxy is not initialized")

var compatiblePairs = map[[2]message.SocketType]bool{
	{message.SocketXSubscriber, message.SocketXPublisher}: true,
	{message.SocketRouter, message.SocketDealer}:           true,
	{message.SocketRouter, message.SocketRouter}:           true,
}

// Proxy moves frames between a frontend and backend socket. It owns
// both sockets and one worker task, and outlives neither.
type Proxy struct {
	mu       sync.Mutex
	frontend Socket
	backend  Socket
	group    *task.Group
	init     bool
	running  int32
}

// New returns an unintialized Proxy.
func New() *Proxy {
	return &Proxy{}
}

// Initialize validates that frontend and backend are a compatible pair
// with distinct, non-empty addresses.
func (p *Proxy) Initialize(frontend, backend Socket) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.init {
		return ErrAlreadyInitialized
	}

	frontendDetails, backendDetails := frontend.SocketDetails(), backend.SocketDetails()
	if frontendDetails.Address == "" || backendDetails.Address == "" {
		return errors.New("frontend and backend addresses must not be empty")
	}
	if frontendDetails.Address == backendDetails.Address {
		return errors.New("frontend and backend addresses must be distinct")
	}
	if !compatiblePairs[[2]message.SocketType{frontendDetails.SocketType, backendDetails.SocketType}] {
		return ErrIncompatiblePair
	}

	p.frontend = frontend
	p.backend = backend
	p.init = true
	return nil
}

// IsInitialized reports whether Initialize has succeeded.
func (p *Proxy) IsInitialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.init
}

// IsRunning reports whether the shoveling worker is active. If the
// worker panicked, this becomes false and the proxy must be
// reinitialized before reuse.
func (p *Proxy) IsRunning() bool {
	return atomic.LoadInt32(&p.running) == 1
}

// SocketDetails returns the (frontend, backend) pair.
func (p *Proxy) SocketDetails() (message.ProxySocketDetails, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.init {
		return message.ProxySocketDetails{}, ErrNotInitialized
	}
	return message.ProxySocketDetails{Frontend: p.frontend.SocketDetails(), Backend: p.backend.SocketDetails()}, nil
}

// Start spawns one worker performing bidirectional shoveling and
// returns immediately.
func (p *Proxy) Start(parent *task.Group) error {
	p.mu.Lock()
	if !p.init {
		p.mu.Unlock()
		return ErrNotInitialized
	}
	frontend, backend := p.frontend.Raw(), p.backend.Raw()
	p.group = parent
	p.mu.Unlock()

	atomic.StoreInt32(&p.running, 1)
	p.group.Queue("proxy-shovel", func() error {
		defer atomic.StoreInt32(&p.running, 0)
		err := zmq.Proxy(frontend, backend, nil)
		if err != nil {
			return errors.Wrap(err, "shoveling frames")
		}
		return nil
	})
	return nil
}

// Stop closes the shoveling sockets so the worker observes the failure
// and exits, then joins it.
func (p *Proxy) Stop() error {
	p.mu.Lock()
	if !p.init {
		p.mu.Unlock()
		return nil
	}
	frontend, backend, group := p.frontend, p.backend, p.group
	p.mu.Unlock()

	group.Cancel()
	frontend.Disconnect()
	backend.Disconnect()
	err := group.Wait()

	p.mu.Lock()
	p.init = false
	p.mu.Unlock()
	atomic.StoreInt32(&p.running, 0)
	return err
}
