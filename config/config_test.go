package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uofuseismo/umps/message"
)

const sampleINI = `
[broadcast.packet]
frontendAddress = tcp://127.0.0.1:8080
backendAddress = tcp://127.0.0.1:8081
frontendHighWaterMark = 100
backendHighWaterMark = 100
zapDomain = global
securityLevel = Stonehouse
moduleName = packetBroadcast
ipcDirectory = /tmp

[service.counter]
address = tcp://127.0.0.1:9090
securityLevel = Woodhouse
clientUserName = alice
clientPassword = s3cret
pingInterval_N = 15
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "umps.ini")
	require.NoError(t, os.WriteFile(path, []byte(sampleINI), 0600))
	return path
}

func TestLoadParsesSections(t *testing.T) {
	path := writeSample(t)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Contains(t, cfg.Sections, "broadcast.packet")
	require.Contains(t, cfg.Sections, "service.counter")

	broadcast := cfg.Sections["broadcast.packet"]
	assert.Equal(t, "tcp://127.0.0.1:8080", broadcast.FrontendAddress)
	assert.Equal(t, "tcp://127.0.0.1:8081", broadcast.BackendAddress)
	assert.Equal(t, 100, broadcast.FrontendHighWaterMark)
	assert.Equal(t, message.Stonehouse, broadcast.SecurityLevel)
	assert.Equal(t, "packetBroadcast", broadcast.ModuleName)

	service := cfg.Sections["service.counter"]
	assert.Equal(t, "tcp://127.0.0.1:9090", service.Address)
	assert.Equal(t, message.Woodhouse, service.SecurityLevel)
	assert.Equal(t, 15, service.PingIntervalSeconds)
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	path := writeSample(t)
	t.Setenv("UMPS_USER", "override-user")
	t.Setenv("UMPS_PASSWORD", "override-password")

	cfg, err := Load(path)
	require.NoError(t, err)

	service := cfg.Sections["service.counter"]
	assert.Equal(t, "override-user", service.ClientUserName)
	assert.Equal(t, "override-password", service.ClientPassword)
}

func TestLoadLeavesCredentialsWhenEnvEmpty(t *testing.T) {
	path := writeSample(t)
	cfg, err := Load(path)
	require.NoError(t, err)

	service := cfg.Sections["service.counter"]
	assert.Equal(t, "alice", service.ClientUserName)
	assert.Equal(t, "s3cret", service.ClientPassword)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)
}
