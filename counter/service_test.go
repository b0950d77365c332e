package counter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uofuseismo/umps/message"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "counter.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func dispatch(t *testing.T, callback func(string, []byte) message.Message, request message.CounterRequest) message.Message {
	t.Helper()
	payload, err := request.ToWire()
	require.NoError(t, err)
	return callback(request.TypeName(), payload)
}

func TestCallbackGetNextValue(t *testing.T) {
	store := newTestStore(t)
	callback := Callback(store)

	reply := dispatch(t, callback, message.CounterRequest{Item: "packet", Operation: message.GetNextValue})
	response, ok := reply.(*message.CounterResponse)
	require.True(t, ok)
	assert.Equal(t, message.Success, response.ReturnCode)
	assert.Equal(t, int64(1), response.Value)
}

func TestCallbackGetCurrentValueUnknownItem(t *testing.T) {
	store := newTestStore(t)
	callback := Callback(store)

	reply := dispatch(t, callback, message.CounterRequest{Item: "missing", Operation: message.GetCurrentValue})
	response, ok := reply.(*message.CounterResponse)
	require.True(t, ok)
	assert.Equal(t, message.NotFound, response.ReturnCode)
}

func TestCallbackResetCounter(t *testing.T) {
	store := newTestStore(t)
	callback := Callback(store)

	dispatch(t, callback, message.CounterRequest{Item: "packet", Operation: message.GetNextValue})
	dispatch(t, callback, message.CounterRequest{Item: "packet", Operation: message.GetNextValue})

	reply := dispatch(t, callback, message.CounterRequest{Item: "packet", Operation: message.ResetCounter})
	response, ok := reply.(*message.CounterResponse)
	require.True(t, ok)
	assert.Equal(t, message.Success, response.ReturnCode)
	assert.Equal(t, int64(0), response.Value)
}

func TestCallbackRejectsWrongTypeName(t *testing.T) {
	store := newTestStore(t)
	callback := Callback(store)

	reply := callback("not-a-counter-request", []byte("garbage"))
	response, ok := reply.(*message.CounterResponse)
	require.True(t, ok)
	assert.Equal(t, message.InvalidMessage, response.ReturnCode)
}
