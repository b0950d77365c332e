package command

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/uofuseismo/umps/message"
	"github.com/uofuseismo/umps/messaging"
	"github.com/uofuseismo/umps/task"
)

// CommandCallback handles the module-specific literal command line
// carried by a CommandRequest, returning the response text and code.
type CommandCallback func(command string) (response string, code message.CommandReturnCode)

// ErrAlreadyRunning is returned by Start when the service is already bound.
var ErrAlreadyRunning = errors.New("local service is already running")

// LocalService is a per-module Reply socket bound at
// ipc://<ipc_dir>/<module_name>.ipc. On Start it
// stores its LocalModuleDetails in the process table; on Stop it
// deletes its row.
type LocalService struct {
	moduleName  string
	helpText    string
	onCommand   CommandCallback
	table       *ProcessTable
	reply       *messaging.Reply

	mu      sync.Mutex
	group   *task.Group
	running bool
}

// NewLocalService returns a LocalService for moduleName, dispatching
// CommandRequest to onCommand and answering AvailableCommandsRequest
// with helpText. reply must be wired to an unbound messaging.Reply on
// ctx; Start binds it.
func NewLocalService(moduleName, helpText string, onCommand CommandCallback, table *ProcessTable, reply *messaging.Reply) *LocalService {
	return &LocalService{moduleName: moduleName, helpText: helpText, onCommand: onCommand, table: table, reply: reply}
}

// IPCAddress returns the ipc:// address this module binds at, per
// addressing rule.
func IPCAddress(ipcDirectory, moduleName string) string {
	return "ipc://" + filepath.Join(ipcDirectory, moduleName+".ipc")
}

// Start binds the Reply socket, records a Running row in the process
// table, and begins servicing requests.
func (s *LocalService) Start(ctx context.Context, options messaging.SocketOptions, processIdentifier int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return ErrAlreadyRunning
	}

	if err := s.reply.Initialize(options, s.callback); err != nil {
		return errors.Wrap(err, "initializing local service reply socket")
	}

	if err := s.table.Upsert(message.LocalModuleDetails{
		ModuleName:        s.moduleName,
		IPCFilePath:       options.Address,
		ProcessIdentifier: processIdentifier,
		ApplicationStatus: message.Running,
	}); err != nil {
		return errors.Wrap(err, "recording process table row")
	}

	s.group = task.NewGroup(ctx)
	if err := s.reply.Start(s.group, "local-service-"+s.moduleName); err != nil {
		return errors.Wrap(err, "starting local service reply loop")
	}
	s.running = true
	return nil
}

// Stop deletes the process table row and closes the Reply socket.
func (s *LocalService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.group.Cancel()
	err := s.group.Wait()
	s.reply.Disconnect()
	if tableErr := s.table.Delete(s.moduleName); tableErr != nil && err == nil {
		err = tableErr
	}
	s.running = false
	return err
}

func (s *LocalService) callback(typeName string, payload []byte) message.Message {
	switch typeName {
	case (&message.AvailableCommandsRequest{}).TypeName():
		return &message.AvailableCommandsResponse{HelpText: s.helpText}
	case (&message.CommandRequest{}).TypeName():
		var request message.CommandRequest
		if err := request.FromWire(payload); err != nil {
			return message.NewFailure(err)
		}
		response, code := s.onCommand(request.Command)
		return &message.CommandResponse{Response: response, ReturnCode: code}
	case (&message.TerminateRequest{}).TypeName():
		go s.Stop()
		return &message.TerminateResponse{ReturnCode: message.CommandSuccess}
	default:
		return message.NewFailure(errors.Errorf("unsupported request type %q", typeName))
	}
}
