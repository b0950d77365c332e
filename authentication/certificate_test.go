package authentication

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCertificateRoundTrip(t *testing.T) {
	keys, err := GenerateKeyPair()
	require.NoError(t, err)

	certificate := NewCertificate(keys)
	certificate.Metadata["owner"] = "test-harness"

	path := filepath.Join(t.TempDir(), "server.key")
	require.NoError(t, certificate.WriteTextFile(path))

	loaded, err := LoadTextFile(path)
	require.NoError(t, err)
	assert.Equal(t, keys.PublicKeyText(), loaded.PublicKey)
	assert.Equal(t, keys.PrivateKeyText(), loaded.PrivateKey)
	assert.Equal(t, "test-harness", loaded.Metadata["owner"])
}

func TestCertificatePublicOnlyFileOmitsSecretKey(t *testing.T) {
	keys, err := GenerateKeyPair()
	require.NoError(t, err)

	certificate := NewCertificate(keys)
	path := filepath.Join(t.TempDir(), "server.pub")
	require.NoError(t, certificate.WritePublicTextFile(path))

	loaded, err := LoadTextFile(path)
	require.NoError(t, err)
	assert.Equal(t, keys.PublicKeyText(), loaded.PublicKey)
	assert.Empty(t, loaded.PrivateKey)
}
