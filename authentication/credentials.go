package authentication

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
)

// Credentials is a plaintext username/password pair submitted by a
// woodhouse client.
type Credentials struct {
	User     string
	Password string
}

const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2KeyLen  = 32
	saltLen       = 16
)

// HashPassword returns an Argon2id hash of password, encoded as
// "salt$hash" in base64 raw-url form.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "reading salt entropy")
	}
	sum := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
	encoding := base64.RawURLEncoding
	return encoding.EncodeToString(salt) + "$" + encoding.EncodeToString(sum), nil
}

// PasswordRecord binds a hashed password to a memoized last-matched
// plaintext: "memoizes the last successfully matched
// plaintext per record to short-circuit repeated lookups".
type PasswordRecord struct {
	hashedPassword string

	mu           sync.Mutex
	lastMatched  string
	hasLastMatch bool
}

// NewPasswordRecord wraps an already-hashed ("salt$hash") password.
func NewPasswordRecord(hashedPassword string) *PasswordRecord {
	return &PasswordRecord{hashedPassword: hashedPassword}
}

// Verify reports whether password matches the stored hash. The last
// successful match is memoized so that a repeated identical plaintext
// short-circuits the (expensive) Argon2 computation.
func (p *PasswordRecord) Verify(password string) (bool, error) {
	p.mu.Lock()
	if p.hasLastMatch && subtle.ConstantTimeCompare([]byte(p.lastMatched), []byte(password)) == 1 {
		p.mu.Unlock()
		return true, nil
	}
	p.mu.Unlock()

	ok, err := verifyArgon2(p.hashedPassword, password)
	if err != nil {
		return false, err
	}
	if ok {
		p.mu.Lock()
		p.lastMatched = password
		p.hasLastMatch = true
		p.mu.Unlock()
	}
	return ok, nil
}

func verifyArgon2(hashedPassword, password string) (bool, error) {
	encoding := base64.RawURLEncoding
	var saltText, sumText string
	for i := 0; i < len(hashedPassword); i++ {
		if hashedPassword[i] == '$' {
			saltText, sumText = hashedPassword[:i], hashedPassword[i+1:]
			break
		}
	}
	if saltText == "" || sumText == "" {
		return false, errors.New("malformed password record")
	}
	salt, err := encoding.DecodeString(saltText)
	if err != nil {
		return false, errors.Wrap(err, "decoding salt")
	}
	expected, err := encoding.DecodeString(sumText)
	if err != nil {
		return false, errors.Wrap(err, "decoding hash")
	}
	computed := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, uint32(len(expected)))
	return subtle.ConstantTimeCompare(expected, computed) == 1, nil
}
