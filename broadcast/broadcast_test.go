//go:build integration

// +build integration

package broadcast

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uofuseismo/umps/authentication"
	"github.com/uofuseismo/umps/message"
	"github.com/uofuseismo/umps/messaging"
)

func TestBroadcastShovelsPublishedMessages(t *testing.T) {
	zmqCtx, err := messaging.NewContext()
	require.NoError(t, err)

	b := New("packet")
	err = b.Initialize(
		zmqCtx,
		messaging.SocketOptions{Address: "tcp://127.0.0.1:*", ConnectOrBind: message.Bind, ZAP: authentication.NewGrasslandsOptions()},
		messaging.SocketOptions{Address: "tcp://127.0.0.1:*", ConnectOrBind: message.Bind, ZAP: authentication.NewGrasslandsOptions()},
		authentication.GrasslandsAuthenticator{},
		nil,
	)
	require.NoError(t, err)
	require.NoError(t, b.Start(context.Background()))
	defer b.Stop()

	details, err := b.ConnectionDetails()
	require.NoError(t, err)

	registry := message.NewRegistry()
	require.NoError(t, registry.Add(&message.AvailableCommandsResponse{}))

	// Publishers connect where the proxy receives (the XSub frontend);
	// subscribers connect where the proxy re-emits (the XPub backend).
	subscriber, err := messaging.NewSubscriber(zmqCtx, registry)
	require.NoError(t, err)
	require.NoError(t, subscriber.Initialize(messaging.SocketOptions{
		Address:       details.Backend.Address,
		ConnectOrBind: message.Connect,
		ZAP:           authentication.NewGrasslandsOptions(),
	}))
	require.NoError(t, subscriber.AddSubscription((&message.AvailableCommandsResponse{}).TypeName()))
	defer subscriber.Disconnect()

	publisher, err := messaging.NewPublisher(zmqCtx)
	require.NoError(t, err)
	require.NoError(t, publisher.Initialize(messaging.SocketOptions{
		Address:       details.Frontend.Address,
		ConnectOrBind: message.Connect,
		ZAP:           authentication.NewGrasslandsOptions(),
	}))
	defer publisher.Disconnect()

	time.Sleep(100 * time.Millisecond) // let the subscription propagate through the xsub/xpub proxy

	var received message.Message
	for i := 0; i < 20 && received == nil; i++ {
		require.NoError(t, publisher.Send(&message.AvailableCommandsResponse{HelpText: "hello"}))
		received, err = subscriber.Receive(100 * time.Millisecond)
		require.NoError(t, err)
	}
	require.NotNil(t, received)

	response, ok := received.(*message.AvailableCommandsResponse)
	require.True(t, ok)
	assert.Equal(t, "hello", response.HelpText)
}
