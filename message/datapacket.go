package message

// DataPacket is a contiguous run of raw time-series samples from one
// channel.
type DataPacket struct {
	Network             string  `cbor:"Network" json:"Network"`
	Station             string  `cbor:"Station" json:"Station"`
	Channel             string  `cbor:"Channel" json:"Channel"`
	LocationCode        string  `cbor:"LocationCode" json:"LocationCode"`
	SamplingRate        float64 `cbor:"SamplingRate" json:"SamplingRate"`
	StartTimeMicroSec   int64   `cbor:"StartTimeMicroSeconds" json:"StartTimeMicroSeconds"`
	Data                []float64 `cbor:"Data" json:"Data"`
}

const dataPacketTypeName = "UMPS::MessageFormats::DataPacket"
const dataPacketVersion = "1.0.0"

type dataPacketWire struct {
	envelope
	DataPacket
}

func (d *DataPacket) TypeName() string { return dataPacketTypeName }
func (d *DataPacket) Version() string  { return dataPacketVersion }

func (d *DataPacket) ToWire() ([]byte, error) {
	return Marshal(dataPacketWire{envelope: newEnvelope(dataPacketTypeName, dataPacketVersion), DataPacket: *d})
}

func (d *DataPacket) FromWire(wire []byte) error {
	var w dataPacketWire
	if err := Unmarshal(wire, &w); err != nil {
		return err
	}
	if err := AssertType(w.MessageType, dataPacketTypeName); err != nil {
		return err
	}
	*d = w.DataPacket
	return nil
}

func (d *DataPacket) Clone() Message {
	var c = *d
	c.Data = append([]float64(nil), d.Data...)
	return &c
}

// EndTimeMicroSeconds returns the time of the packet's last sample,
// implied by its sample count and sampling rate, or StartTimeMicroSec
// itself when the packet carries no samples or has no positive
// sampling rate.
func (d *DataPacket) EndTimeMicroSeconds() int64 {
	if len(d.Data) == 0 || d.SamplingRate <= 0 {
		return d.StartTimeMicroSec
	}
	var durationMicros = float64(len(d.Data)-1) / d.SamplingRate * 1e6
	return d.StartTimeMicroSec + int64(durationMicros)
}
