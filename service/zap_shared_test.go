//go:build integration

// +build integration

package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uofuseismo/umps/authentication"
	"github.com/uofuseismo/umps/broadcast"
	"github.com/uofuseismo/umps/counter"
	"github.com/uofuseismo/umps/message"
	"github.com/uofuseismo/umps/messaging"
	"github.com/uofuseismo/umps/service"
	"github.com/uofuseismo/umps/task"
)

// TestSharedContextStonehouseHandshake drives a real stonehouse (CURVE)
// ZAP handshake across two composites -- a ProxyService and a Broadcast
// -- bound on one shared messaging.Context. It exercises three things
// at once: the ZAP REP socket is bound on the same zmq.Context as the
// proxy sockets (so the handshake is even seen), a single ZAP service
// is shared rather than each composite binding its own (so the second
// Start does not fail with "address already in use"), and the raw
// CURVE public-key frame is normalized to Z85 before the allowlist
// lookup (so a legitimate client is actually let in).
func TestSharedContextStonehouseHandshake(t *testing.T) {
	zmqCtx, err := messaging.NewContext()
	require.NoError(t, err)

	serverKeys, err := authentication.GenerateKeyPair()
	require.NoError(t, err)
	clientKeys, err := authentication.GenerateKeyPair()
	require.NoError(t, err)

	users := authentication.NewUserStore()
	users.Add(authentication.UserRecord{
		Name:       "tester",
		PublicKey:  clientKeys.PublicKeyText(),
		Privileges: message.Administrator,
	})
	authenticator := authentication.NewStonehouseAuthenticator(users)

	const domain = "global"
	serverOptions := authentication.NewStonehouseServerOptions(domain, serverKeys)
	serverPublicKey, err := authentication.NewPublicKey(serverKeys.PublicKeyText())
	require.NoError(t, err)
	clientOptions := authentication.NewStonehouseClientOptions(domain, serverPublicKey, clientKeys)

	store, err := counter.OpenStore(filepath.Join(t.TempDir(), "counter.sqlite"))
	require.NoError(t, err)
	defer store.Close()

	svc := service.New("counter-stonehouse")
	require.NoError(t, svc.Initialize(
		zmqCtx,
		messaging.SocketOptions{Address: "tcp://127.0.0.1:*", ConnectOrBind: message.Bind, ZAP: serverOptions},
		messaging.SocketOptions{Address: "tcp://127.0.0.1:*", ConnectOrBind: message.Bind, ZAP: serverOptions},
		authenticator,
		nil,
	))

	bc := broadcast.New("heartbeat-stonehouse")
	require.NoError(t, bc.Initialize(
		zmqCtx,
		messaging.SocketOptions{Address: "tcp://127.0.0.1:*", ConnectOrBind: message.Bind, ZAP: serverOptions},
		messaging.SocketOptions{Address: "tcp://127.0.0.1:*", ConnectOrBind: message.Bind, ZAP: serverOptions},
		authenticator,
		nil,
	))

	require.NoError(t, svc.Start(context.Background()))
	defer svc.Stop()
	// A second composite sharing zmqCtx must attach to the same ZAP
	// service rather than re-binding inproc://zeromq.zap.01.
	require.NoError(t, bc.Start(context.Background()))
	defer bc.Stop()

	details, err := svc.ConnectionDetails()
	require.NoError(t, err)

	worker, err := messaging.NewReply(zmqCtx)
	require.NoError(t, err)
	require.NoError(t, worker.Initialize(messaging.SocketOptions{
		Address:       details.Backend.Address,
		ConnectOrBind: message.Connect,
		ZAP:           clientOptions,
	}, counter.Callback(store)))

	workerGroup := task.NewGroup(context.Background())
	require.NoError(t, worker.Start(workerGroup, "counter-worker"))
	defer func() {
		workerGroup.Cancel()
		workerGroup.Wait()
		worker.Disconnect()
	}()

	registry := message.NewRegistry()
	require.NoError(t, registry.Add(&message.CounterResponse{}))
	require.NoError(t, registry.Add(&message.Failure{}))

	request, err := messaging.NewRequest(zmqCtx, registry, 2*time.Second)
	require.NoError(t, err)
	require.NoError(t, request.Initialize(messaging.SocketOptions{
		Address:       details.Frontend.Address,
		ConnectOrBind: message.Connect,
		ZAP:           clientOptions,
	}))
	defer request.Disconnect()

	reply, err := request.Request(&message.CounterRequest{Item: "packet", Operation: message.GetNextValue})
	require.NoError(t, err)
	response, ok := reply.(*message.CounterResponse)
	require.True(t, ok)
	assert.Equal(t, message.Success, response.ReturnCode)
	assert.Equal(t, int64(1), response.Value)
}
