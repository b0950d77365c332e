package authentication

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uofuseismo/umps/message"
)

func TestGrasslandsAuthenticatorAllowsEverything(t *testing.T) {
	var authenticator GrasslandsAuthenticator
	assert.Equal(t, Allow, authenticator.Authenticate(Request{Address: "10.0.0.1"}))
	assert.Equal(t, Allow, authenticator.Authenticate(Request{}))
}

func TestStrawhouseAuthenticatorBlacklist(t *testing.T) {
	authenticator := NewStrawhouseAuthenticator([]string{"10.0.0.1"})
	assert.Equal(t, Deny, authenticator.Authenticate(Request{Address: "10.0.0.1"}))
	assert.Equal(t, Allow, authenticator.Authenticate(Request{Address: "10.0.0.2"}))
}

func TestWoodhouseAuthenticatorChecksCredentials(t *testing.T) {
	hashed, err := HashPassword("correct horse")
	require.NoError(t, err)

	users := NewUserStore()
	users.Add(UserRecord{Name: "alice", Password: NewPasswordRecord(hashed), Privileges: message.ReadWrite})

	authenticator := NewWoodhouseAuthenticator(users)
	assert.Equal(t, Allow, authenticator.Authenticate(Request{User: "alice", Password: "correct horse"}))
	assert.Equal(t, Deny, authenticator.Authenticate(Request{User: "alice", Password: "wrong"}))
	assert.Equal(t, Deny, authenticator.Authenticate(Request{User: "bob", Password: "correct horse"}))
}

func TestStonehouseAuthenticatorAllowlist(t *testing.T) {
	users := NewUserStore()
	users.Add(UserRecord{Name: "alice", PublicKey: "rq:rM5o+r5Y3Q>MK>$:y?O!&:y?O!&:y?O!&:", Privileges: message.Administrator})

	authenticator := NewStonehouseAuthenticator(users)
	assert.Equal(t, Allow, authenticator.Authenticate(Request{PublicKey: "rq:rM5o+r5Y3Q>MK>$:y?O!&:y?O!&:y?O!&:"}))

	// A single-byte difference must be rejected.
	assert.Equal(t, Deny, authenticator.Authenticate(Request{PublicKey: "rq:rM5o+r5Y3Q>MK>$:y?O!&:y?O!&:y?O!&X"}))
}
