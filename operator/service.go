package operator

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/uofuseismo/umps/logging"
	"github.com/uofuseismo/umps/messaging"
	"github.com/uofuseismo/umps/task"
)

const defaultSweepInterval = 30 * time.Second

// ErrAlreadyRunning is returned by Start when the service is already bound.
var ErrAlreadyRunning = errors.New("operator service is already running")

// Service binds a Reply socket at the operator's well-known address and
// answers AvailableConnectionsRequest from its Directory.
type Service struct {
	directory *Directory
	reply     *messaging.Reply
	log       logging.Logger

	mu      sync.Mutex
	group   *task.Group
	running bool
}

// NewService returns a Service backed by directory, serving requests on
// an uninitialized messaging.Reply the caller must Initialize first.
func NewService(directory *Directory, reply *messaging.Reply, log logging.Logger) *Service {
	if log == nil {
		log = logging.NewDiscard()
	}
	return &Service{directory: directory, reply: reply, log: log}
}

// Start begins servicing requests. reply must already be initialized
// (bound, with its callback wired to directory.Callback()).
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return ErrAlreadyRunning
	}
	if !s.reply.IsInitialized() {
		return errors.New("reply socket must be initialized before starting the operator service")
	}

	s.group = task.NewGroup(ctx)
	sweepInterval := defaultSweepInterval
	s.directory.StartSweeper(s.group, sweepInterval)
	if err := s.reply.Start(s.group, "operator-service"); err != nil {
		return errors.Wrap(err, "starting operator reply loop")
	}
	s.running = true
	return nil
}

// Stop cancels the background tasks and closes the Reply socket.
func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.group.Cancel()
	err := s.group.Wait()
	s.reply.Disconnect()
	s.running = false
	return err
}
