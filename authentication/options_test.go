package authentication

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZAPOptionsValidate(t *testing.T) {
	assert.NoError(t, NewGrasslandsOptions().Validate())
	assert.NoError(t, NewStrawhouseOptions("global").Validate())
	assert.Error(t, ZAPOptions{Level: Strawhouse}.Validate())

	assert.NoError(t, NewWoodhouseServerOptions("global").Validate())
	assert.Error(t, NewWoodhouseClientOptions("global", Credentials{}).Validate())
	assert.NoError(t, NewWoodhouseClientOptions("global", Credentials{User: "alice", Password: "x"}).Validate())

	serverKeys, err := GenerateKeyPair()
	assert.NoError(t, err)
	assert.NoError(t, NewStonehouseServerOptions("global", serverKeys).Validate())

	clientKeys, err := GenerateKeyPair()
	assert.NoError(t, err)
	serverPublic, err := NewPublicKey(serverKeys.PublicKeyText())
	assert.NoError(t, err)
	assert.NoError(t, NewStonehouseClientOptions("global", serverPublic, clientKeys).Validate())

	incompleteClient := ZAPOptions{Level: Stonehouse, Role: Client, Domain: "global", ServerKeys: serverPublic}
	assert.Error(t, incompleteClient.Validate())
}
