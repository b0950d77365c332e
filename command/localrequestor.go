package command

import (
	"time"

	"github.com/pkg/errors"
	"github.com/uofuseismo/umps/message"
	"github.com/uofuseismo/umps/messaging"
)

// DefaultRequestTimeout is the LocalRequestor's default timeout: a CLI
// caller is expected to retry rather than block on a slow module.
const DefaultRequestTimeout = 10 * time.Millisecond

// LocalRequestor is the CLI-side client of a module's LocalService.
type LocalRequestor struct {
	request *messaging.Request
}

// NewLocalRequestor wraps an initialized messaging.Request connected to
// IPCAddress(ipcDirectory, moduleName).
func NewLocalRequestor(request *messaging.Request) *LocalRequestor {
	return &LocalRequestor{request: request}
}

// AvailableCommands fetches the module's static help text.
func (r *LocalRequestor) AvailableCommands() (string, error) {
	reply, err := r.request.Request(&message.AvailableCommandsRequest{})
	if err != nil {
		return "", err
	}
	if failure, ok := reply.(*message.Failure); ok {
		return "", failure
	}
	response, ok := reply.(*message.AvailableCommandsResponse)
	if !ok {
		return "", errors.New("unexpected reply type from local service")
	}
	return response.HelpText, nil
}

// Command issues command as the literal line typed by the CLI user.
func (r *LocalRequestor) Command(command string) (string, message.CommandReturnCode, error) {
	reply, err := r.request.Request(&message.CommandRequest{Command: command})
	if err != nil {
		return "", message.CommandApplicationError, err
	}
	if failure, ok := reply.(*message.Failure); ok {
		return "", message.CommandApplicationError, failure
	}
	response, ok := reply.(*message.CommandResponse)
	if !ok {
		return "", message.CommandApplicationError, errors.New("unexpected reply type from local service")
	}
	return response.Response, response.ReturnCode, nil
}

// Terminate asks the module to begin shutdown after replying.
func (r *LocalRequestor) Terminate() (message.CommandReturnCode, error) {
	reply, err := r.request.Request(&message.TerminateRequest{})
	if err != nil {
		return message.CommandApplicationError, err
	}
	if failure, ok := reply.(*message.Failure); ok {
		return message.CommandApplicationError, failure
	}
	response, ok := reply.(*message.TerminateResponse)
	if !ok {
		return message.CommandApplicationError, errors.New("unexpected reply type from local service")
	}
	return response.ReturnCode, nil
}
