package message

// CounterOperation selects the behavior of the incrementer service.
type CounterOperation int

const (
	GetNextValue CounterOperation = iota
	GetCurrentValue
	ResetCounter
)

// CounterRequest asks the incrementer service for a value on a named
// counter item.
type CounterRequest struct {
	Item      string           `cbor:"Item" json:"Item"`
	Operation CounterOperation `cbor:"Operation" json:"Operation"`
}

const counterRequestTypeName = "UMPS::Services::Counter::CounterRequest"
const counterRequestVersion = "1.0.0"

type counterRequestWire struct {
	envelope
	CounterRequest
}

func (r *CounterRequest) TypeName() string { return counterRequestTypeName }
func (r *CounterRequest) Version() string  { return counterRequestVersion }

func (r *CounterRequest) ToWire() ([]byte, error) {
	return Marshal(counterRequestWire{envelope: newEnvelope(counterRequestTypeName, counterRequestVersion), CounterRequest: *r})
}

func (r *CounterRequest) FromWire(wire []byte) error {
	var w counterRequestWire
	if err := Unmarshal(wire, &w); err != nil {
		return err
	}
	if err := AssertType(w.MessageType, counterRequestTypeName); err != nil {
		return err
	}
	*r = w.CounterRequest
	return nil
}

func (r *CounterRequest) Clone() Message {
	var c = *r
	return &c
}

// CounterResponse answers CounterRequest.
type CounterResponse struct {
	Value      int64      `cbor:"Value" json:"Value"`
	ReturnCode ReturnCode `cbor:"ReturnCode" json:"ReturnCode"`
}

const counterResponseTypeName = "UMPS::Services::Counter::CounterResponse"
const counterResponseVersion = "1.0.0"

type counterResponseWire struct {
	envelope
	CounterResponse
}

func (r *CounterResponse) TypeName() string { return counterResponseTypeName }
func (r *CounterResponse) Version() string  { return counterResponseVersion }

func (r *CounterResponse) ToWire() ([]byte, error) {
	return Marshal(counterResponseWire{envelope: newEnvelope(counterResponseTypeName, counterResponseVersion), CounterResponse: *r})
}

func (r *CounterResponse) FromWire(wire []byte) error {
	var w counterResponseWire
	if err := Unmarshal(wire, &w); err != nil {
		return err
	}
	if err := AssertType(w.MessageType, counterResponseTypeName); err != nil {
		return err
	}
	*r = w.CounterResponse
	return nil
}

func (r *CounterResponse) Clone() Message {
	var c = *r
	return &c
}
