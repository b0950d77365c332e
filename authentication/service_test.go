package authentication

import (
	"testing"

	zmq "github.com/pebbe/zmq4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseZAPRequestNormalizesCurvePublicKeyToZ85(t *testing.T) {
	keys, err := GenerateKeyPair()
	require.NoError(t, err)

	// The wire carries the client's raw 32-byte key, not its Z85 text.
	rawPublicKey := zmq.Z85decode(keys.PublicKeyText())

	frames := []string{zapVersion, "req-1", "global", "10.0.0.1", "identity", "CURVE", rawPublicKey}
	requestID, request, err := parseZAPRequest(frames)
	require.NoError(t, err)
	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, keys.PublicKeyText(), request.PublicKey)
}

func TestParseZAPRequestPlain(t *testing.T) {
	frames := []string{zapVersion, "req-2", "global", "10.0.0.1", "identity", "PLAIN", "alice", "secret"}
	_, request, err := parseZAPRequest(frames)
	require.NoError(t, err)
	assert.Equal(t, "alice", request.User)
	assert.Equal(t, "secret", request.Password)
}

func TestParseZAPRequestRejectsUnsupportedMechanism(t *testing.T) {
	frames := []string{zapVersion, "req-3", "global", "10.0.0.1", "identity", "GSSAPI"}
	_, _, err := parseZAPRequest(frames)
	assert.Error(t, err)
}

func TestBuildZAPReplyDeny(t *testing.T) {
	reply := buildZAPReply("req-4", Request{User: "alice"}, Deny)
	assert.Equal(t, []string{zapVersion, "req-4", "400", "Denied", "alice", ""}, reply)
}

func TestBuildZAPReplyAllow(t *testing.T) {
	reply := buildZAPReply("req-5", Request{PublicKey: "abc"}, Allow)
	assert.Equal(t, []string{zapVersion, "req-5", "200", "OK", "abc", ""}, reply)
}
