package operator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uofuseismo/umps/message"
)

func TestDirectoryRegisterAndAvailable(t *testing.T) {
	d := NewDirectory(time.Hour)
	d.Register(message.ConnectionDetails{Name: "Heartbeat", ConnectionType: message.ConnectionBroadcast})
	d.Register(message.ConnectionDetails{Name: "Counter", ConnectionType: message.ConnectionService})

	available := d.Available()
	assert.Len(t, available, 2)
}

func TestDirectoryDeregister(t *testing.T) {
	d := NewDirectory(time.Hour)
	d.Register(message.ConnectionDetails{Name: "Heartbeat"})
	d.Deregister("Heartbeat")
	assert.Empty(t, d.Available())
}

func TestDirectorySweepStaleEntries(t *testing.T) {
	d := NewDirectory(time.Minute)
	now := time.Now()
	d.now = func() time.Time { return now }
	d.Register(message.ConnectionDetails{Name: "Stale"})

	now = now.Add(2 * time.Minute)
	d.sweepStale()
	assert.Empty(t, d.Available())
}

func TestDirectoryCallback(t *testing.T) {
	d := NewDirectory(time.Hour)
	d.Register(message.ConnectionDetails{Name: "Heartbeat"})

	request := &message.AvailableConnectionsRequest{}
	payload, err := request.ToWire()
	require.NoError(t, err)

	callback := d.Callback()
	reply := callback(request.TypeName(), payload)
	response, ok := reply.(*message.AvailableConnectionsResponse)
	require.True(t, ok)
	assert.Equal(t, message.Success, response.ReturnCode)
	assert.Len(t, response.Details, 1)
}
