// Package authentication implements the four-level ZAP security plane
// (grasslands, strawhouse, woodhouse, stonehouse) that rides alongside
// every proxy.
package authentication

import (
	"github.com/pebbe/zmq4"
	"github.com/pkg/errors"
)

// ErrInvalidKey is returned when a key is not exactly 32 raw bytes or not
// a valid 40-character Z85 string.
var ErrInvalidKey = errors.New("key must be 32 raw bytes or a 40-character Z85 string")

// Keys holds a Curve25519 public/private keypair in Z85 text form.
type Keys struct {
	publicKeyText  string
	privateKeyText string
	hasPrivate     bool
}

// GenerateKeyPair draws fresh entropy from libzmq's Curve keygen and
// returns a Keys holding both halves.
func GenerateKeyPair() (Keys, error) {
	public, private, err := zmq4.NewCurveKeypair()
	if err != nil {
		return Keys{}, errors.Wrap(err, "zmq4.NewCurveKeypair")
	}
	return Keys{publicKeyText: public, privateKeyText: private, hasPrivate: true}, nil
}

// NewPublicKey wraps a peer's public key, known only in Z85 text form.
func NewPublicKey(z85PublicKey string) (Keys, error) {
	if len(z85PublicKey) != 40 {
		return Keys{}, ErrInvalidKey
	}
	return Keys{publicKeyText: z85PublicKey}, nil
}

// PublicKeyText returns the Z85-encoded public key.
func (k Keys) PublicKeyText() string { return k.publicKeyText }

// PrivateKeyText returns the Z85-encoded private key. HasPrivateKey must
// be checked first; an empty string is returned for a peer-only Keys.
func (k Keys) PrivateKeyText() string { return k.privateKeyText }

// HasPrivateKey reports whether this Keys owns a private half, i.e. it is
// a full keypair rather than a peer's public key alone.
func (k Keys) HasPrivateKey() bool { return k.hasPrivate }

// IsValid reports whether the public key half is set.
func (k Keys) IsValid() bool { return len(k.publicKeyText) == 40 }
