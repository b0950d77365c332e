//go:build integration

// +build integration

package command

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uofuseismo/umps/authentication"
	"github.com/uofuseismo/umps/message"
	"github.com/uofuseismo/umps/messaging"
)

// TestLocalServiceAndRequestorRoundTrip exercises LocalService/LocalRequestor
// end to end over a real ipc:// socket.
func TestLocalServiceAndRequestorRoundTrip(t *testing.T) {
	zmqCtx, err := messaging.NewContext()
	require.NoError(t, err)

	address := IPCAddress(t.TempDir(), "picker")

	table, err := OpenProcessTable(filepath.Join(t.TempDir(), "process.sqlite"))
	require.NoError(t, err)
	defer table.Close()

	reply, err := messaging.NewReply(zmqCtx)
	require.NoError(t, err)

	onCommand := func(command string) (string, message.CommandReturnCode) {
		if command == "status" {
			return "running", message.CommandSuccess
		}
		return "", message.CommandInvalidCommand
	}
	service := NewLocalService("picker", "picker help text", onCommand, table, reply)

	options := messaging.SocketOptions{
		Address:       address,
		ConnectOrBind: message.Bind,
		ZAP:           authentication.NewGrasslandsOptions(),
	}
	require.NoError(t, service.Start(context.Background(), options, 4242))
	defer service.Stop()

	row, err := table.Get("picker")
	require.NoError(t, err)
	assert.Equal(t, message.Running, row.ApplicationStatus)

	registry := message.NewRegistry()
	require.NoError(t, registry.Add(&message.AvailableCommandsResponse{}))
	require.NoError(t, registry.Add(&message.CommandResponse{}))
	require.NoError(t, registry.Add(&message.TerminateResponse{}))
	require.NoError(t, registry.Add(&message.Failure{}))

	request, err := messaging.NewRequest(zmqCtx, registry, 2*time.Second)
	require.NoError(t, err)
	require.NoError(t, request.Initialize(messaging.SocketOptions{
		Address:       address,
		ConnectOrBind: message.Connect,
		ZAP:           authentication.NewGrasslandsOptions(),
	}))
	defer request.Disconnect()

	requestor := NewLocalRequestor(request)

	helpText, err := requestor.AvailableCommands()
	require.NoError(t, err)
	assert.Equal(t, "picker help text", helpText)

	response, code, err := requestor.Command("status")
	require.NoError(t, err)
	assert.Equal(t, message.CommandSuccess, code)
	assert.Equal(t, "running", response)

	code, err = requestor.Terminate()
	require.NoError(t, err)
	assert.Equal(t, message.CommandSuccess, code)
}
