package message

// Polarity is the sign convention of a seismic phase pick.
type Polarity int

const (
	PolarityUnknown Polarity = iota
	PolarityUp
	PolarityDown
)

// Pick is a single phase-arrival-time detection produced by a picker
// module.
type Pick struct {
	Network      string   `cbor:"Network" json:"Network"`
	Station      string   `cbor:"Station" json:"Station"`
	Channel      string   `cbor:"Channel" json:"Channel"`
	LocationCode string   `cbor:"LocationCode" json:"LocationCode"`
	Time         float64  `cbor:"Time" json:"Time"`
	Identifier   uint64   `cbor:"Identifier" json:"Identifier"`
	Polarity     Polarity `cbor:"Polarity" json:"Polarity"`
	PhaseHint    string   `cbor:"PhaseHint,omitempty" json:"PhaseHint,omitempty"`
	Algorithm    string   `cbor:"Algorithm,omitempty" json:"Algorithm,omitempty"`
}

const pickTypeName = "UMPS::MessageFormats::Pick"
const pickVersion = "1.0.0"

type pickWire struct {
	envelope
	Pick
}

func (p *Pick) TypeName() string { return pickTypeName }
func (p *Pick) Version() string  { return pickVersion }

func (p *Pick) ToWire() ([]byte, error) {
	return Marshal(pickWire{envelope: newEnvelope(pickTypeName, pickVersion), Pick: *p})
}

func (p *Pick) FromWire(wire []byte) error {
	var w pickWire
	if err := Unmarshal(wire, &w); err != nil {
		return err
	}
	if err := AssertType(w.MessageType, pickTypeName); err != nil {
		return err
	}
	*p = w.Pick
	return nil
}

func (p *Pick) Clone() Message {
	var c = *p
	return &c
}
