package message

import "time"

// HeartbeatStatus mirrors UMPS::MessageFormats::HeartbeatStatus.
type HeartbeatStatus int

const (
	HeartbeatUnknown HeartbeatStatus = iota
	HeartbeatAlive
	HeartbeatDegraded
)

// Heartbeat is a periodic liveness announcement published by a module.
type Heartbeat struct {
	HostName  string          `cbor:"HostName" json:"HostName"`
	Status    HeartbeatStatus `cbor:"Status" json:"Status"`
	TimeStamp string          `cbor:"TimeStamp" json:"TimeStamp"`
}

const heartbeatTypeName = "UMPS::MessageFormats::Heartbeat"
const heartbeatVersion = "1.0.0"

// NewHeartbeat returns a Heartbeat stamped with the current UTC time.
func NewHeartbeat(hostName string, status HeartbeatStatus) *Heartbeat {
	return &Heartbeat{
		HostName:  hostName,
		Status:    status,
		TimeStamp: time.Now().UTC().Format("2006-01-02 15:04:05.000"),
	}
}

type heartbeatWire struct {
	envelope
	Heartbeat
}

func (h *Heartbeat) TypeName() string { return heartbeatTypeName }
func (h *Heartbeat) Version() string  { return heartbeatVersion }

func (h *Heartbeat) ToWire() ([]byte, error) {
	return Marshal(heartbeatWire{envelope: newEnvelope(heartbeatTypeName, heartbeatVersion), Heartbeat: *h})
}

func (h *Heartbeat) FromWire(wire []byte) error {
	var w heartbeatWire
	if err := Unmarshal(wire, &w); err != nil {
		return err
	}
	if err := AssertType(w.MessageType, heartbeatTypeName); err != nil {
		return err
	}
	*h = w.Heartbeat
	return nil
}

func (h *Heartbeat) Clone() Message {
	var c = *h
	return &c
}
