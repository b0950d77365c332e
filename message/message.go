// Package message defines the wire-message abstraction shared by every
// socket primitive in this module: a type-name-tagged, versioned payload
// that knows how to serialize and deserialize itself to CBOR (and, for
// human-facing tooling, to JSON). Unlike go.gazette.dev/core/message --
// which layers exactly-once semantics atop an append-only journal -- this
// package has no notion of a journal, offset, or producer sequence: UMPS
// transport is at-most-once pub/sub and req/rep, not a durable log, so
// messages here are plain, unwrapped values.
package message

import (
	"encoding/json"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Message is an arbitrary application payload that can name itself on the
// wire. Every concrete type in this package and every consumer-defined
// payload type implements this interface.
type Message interface {
	// TypeName is the globally unique wire tag, e.g.
	// "UMPS::Services::Command::CommandRequest".
	TypeName() string
	// Version is a semver string for the message's wire shape.
	Version() string
	// ToWire serializes the message to CBOR.
	ToWire() ([]byte, error)
	// FromWire populates the message in place from previously-serialized
	// CBOR bytes. It must verify the "MessageType" tag before populating
	// fields.
	FromWire([]byte) error
	// Clone returns an independent copy with no shared mutable state.
	Clone() Message
}

// JSONCodable is an optional interface implemented by messages that also
// support a human-facing JSON alternate wire form.
type JSONCodable interface {
	ToJSON() ([]byte, error)
	FromJSON([]byte) error
}

// ErrUnknownMessageType is returned by Registry.Get for an unregistered
// type name.
var ErrUnknownMessageType = errors.New("unknown message type")

// ErrMessageTypeMismatch is returned by decode helpers when the
// "MessageType" field on the wire does not match the instance being
// populated.
var ErrMessageTypeMismatch = errors.New("message type mismatch")

// envelope is the minimal shape every wire message begins with: a
// MessageType tag, first, then an optional MessageVersion and an optional
// MessageID. Concrete types embed this (by convention, as their first
// encoded fields) so that
// "MessageType" is always the first discoverable field.
type envelope struct {
	MessageType    string `cbor:"MessageType" json:"MessageType"`
	MessageVersion string `cbor:"MessageVersion,omitempty" json:"MessageVersion,omitempty"`
	MessageID      string `cbor:"MessageID,omitempty" json:"MessageID,omitempty"`
}

// newEnvelope builds an envelope tagging a freshly-encoded message with a
// unique MessageID, so a logged or replayed wire frame can be correlated
// across a request/reply or pub/sub hop even though UMPS has no
// journal/offset identity to fall back on (see this package's doc comment).
func newEnvelope(typeName, version string) envelope {
	return envelope{MessageType: typeName, MessageVersion: version, MessageID: uuid.NewString()}
}

// peekEnvelope decodes only the envelope fields of a wire frame, to check
// the MessageType tag before committing to a full decode.
func peekEnvelope(wire []byte) (envelope, error) {
	var e envelope
	if err := cbor.Unmarshal(wire, &e); err != nil {
		return envelope{}, errors.Wrap(err, "decode envelope")
	}
	return e, nil
}

// VerifyType decodes wire's envelope and returns ErrMessageTypeMismatch if
// its MessageType does not equal wantType. It also returns a warning flag,
// rather than an error, when wantVersion is non-empty and differs from the
// wire's MessageVersion.
func VerifyType(wire []byte, wantType, wantVersion string) (versionMismatch bool, err error) {
	e, err := peekEnvelope(wire)
	if err != nil {
		return false, err
	}
	if e.MessageType != wantType {
		return false, errors.Wrapf(ErrMessageTypeMismatch, "got %q, want %q", e.MessageType, wantType)
	}
	if wantVersion != "" && e.MessageVersion != "" && e.MessageVersion != wantVersion {
		return true, nil
	}
	return false, nil
}

// Marshal CBOR-encodes v, which must have MessageType as its first field
// (every concrete type in this package satisfies this by construction).
func Marshal(v interface{}) ([]byte, error) {
	b, err := cbor.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "cbor marshal")
	}
	return b, nil
}

// Unmarshal decodes CBOR wire bytes into v.
func Unmarshal(wire []byte, v interface{}) error {
	if err := cbor.Unmarshal(wire, v); err != nil {
		return errors.Wrap(err, "cbor unmarshal")
	}
	return nil
}

// MarshalJSON is the equivalent human-facing form: JSON is supported as
// an alternative to the CBOR wire encoding.
func MarshalJSON(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "json marshal")
	}
	return b, nil
}

// UnmarshalJSON decodes the JSON alternate form into v.
func UnmarshalJSON(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrap(err, "json unmarshal")
	}
	return nil
}

// AssertType is a small helper concrete FromWire implementations use to
// fail fast and legibly when handed bytes for a different message type.
func AssertType(got, want string) error {
	if got != want {
		return errors.Wrapf(ErrMessageTypeMismatch, "got %q, want %q", got, want)
	}
	return nil
}
