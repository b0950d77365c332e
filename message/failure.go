package message

// Failure carries an error back to a caller instead of propagating an
// exception out of a worker task's ApplicationFailure policy.
type Failure struct {
	Details string `cbor:"Details" json:"Details"`
}

const failureTypeName = "UMPS::MessageFormats::Failure"
const failureVersion = "1.0.0"

// NewFailure wraps err's text in a Failure message.
func NewFailure(err error) *Failure {
	return &Failure{Details: err.Error()}
}

type failureWire struct {
	envelope
	Failure
}

func (f *Failure) TypeName() string { return failureTypeName }
func (f *Failure) Version() string  { return failureVersion }

func (f *Failure) ToWire() ([]byte, error) {
	return Marshal(failureWire{envelope: newEnvelope(failureTypeName, failureVersion), Failure: *f})
}

func (f *Failure) FromWire(wire []byte) error {
	var w failureWire
	if err := Unmarshal(wire, &w); err != nil {
		return err
	}
	if err := AssertType(w.MessageType, failureTypeName); err != nil {
		return err
	}
	*f = w.Failure
	return nil
}

func (f *Failure) Clone() Message {
	var c = *f
	return &c
}

func (f *Failure) Error() string { return f.Details }
