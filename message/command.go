package message

// CommandReturnCode enumerates the outcome of a module command.
type CommandReturnCode int

const (
	CommandSuccess CommandReturnCode = iota
	CommandInvalidCommand
	CommandApplicationError
)

// AvailableCommandsRequest asks a module for its static help text.
type AvailableCommandsRequest struct{}

const availableCommandsRequestTypeName = "UMPS::Services::Command::AvailableCommandsRequest"
const availableCommandsRequestVersion = "1.0.0"

type availableCommandsRequestWire struct{ envelope }

func (r *AvailableCommandsRequest) TypeName() string { return availableCommandsRequestTypeName }
func (r *AvailableCommandsRequest) Version() string  { return availableCommandsRequestVersion }

func (r *AvailableCommandsRequest) ToWire() ([]byte, error) {
	return Marshal(availableCommandsRequestWire{newEnvelope(availableCommandsRequestTypeName, availableCommandsRequestVersion)})
}

func (r *AvailableCommandsRequest) FromWire(wire []byte) error {
	var w availableCommandsRequestWire
	if err := Unmarshal(wire, &w); err != nil {
		return err
	}
	return AssertType(w.MessageType, availableCommandsRequestTypeName)
}

func (r *AvailableCommandsRequest) Clone() Message { return &AvailableCommandsRequest{} }

// AvailableCommandsResponse answers AvailableCommandsRequest.
type AvailableCommandsResponse struct {
	HelpText string `cbor:"HelpText" json:"HelpText"`
}

const availableCommandsResponseTypeName = "UMPS::Services::Command::AvailableCommandsResponse"
const availableCommandsResponseVersion = "1.0.0"

type availableCommandsResponseWire struct {
	envelope
	AvailableCommandsResponse
}

func (r *AvailableCommandsResponse) TypeName() string { return availableCommandsResponseTypeName }
func (r *AvailableCommandsResponse) Version() string  { return availableCommandsResponseVersion }

func (r *AvailableCommandsResponse) ToWire() ([]byte, error) {
	return Marshal(availableCommandsResponseWire{
		envelope:                  newEnvelope(availableCommandsResponseTypeName, availableCommandsResponseVersion),
		AvailableCommandsResponse: *r,
	})
}

func (r *AvailableCommandsResponse) FromWire(wire []byte) error {
	var w availableCommandsResponseWire
	if err := Unmarshal(wire, &w); err != nil {
		return err
	}
	if err := AssertType(w.MessageType, availableCommandsResponseTypeName); err != nil {
		return err
	}
	*r = w.AvailableCommandsResponse
	return nil
}

func (r *AvailableCommandsResponse) Clone() Message {
	var c = *r
	return &c
}

// CommandRequest carries the literal command line typed by a CLI user.
type CommandRequest struct {
	Command string `cbor:"Command" json:"Command"`
}

const commandRequestTypeName = "UMPS::Services::Command::CommandRequest"
const commandRequestVersion = "1.0.0"

type commandRequestWire struct {
	envelope
	CommandRequest
}

func (r *CommandRequest) TypeName() string { return commandRequestTypeName }
func (r *CommandRequest) Version() string  { return commandRequestVersion }

func (r *CommandRequest) ToWire() ([]byte, error) {
	return Marshal(commandRequestWire{envelope: newEnvelope(commandRequestTypeName, commandRequestVersion), CommandRequest: *r})
}

func (r *CommandRequest) FromWire(wire []byte) error {
	var w commandRequestWire
	if err := Unmarshal(wire, &w); err != nil {
		return err
	}
	if err := AssertType(w.MessageType, commandRequestTypeName); err != nil {
		return err
	}
	*r = w.CommandRequest
	return nil
}

func (r *CommandRequest) Clone() Message {
	var c = *r
	return &c
}

// CommandResponse answers CommandRequest.
type CommandResponse struct {
	Response   string            `cbor:"Response" json:"Response"`
	ReturnCode CommandReturnCode `cbor:"ReturnCode" json:"ReturnCode"`
}

const commandResponseTypeName = "UMPS::Services::Command::CommandResponse"
const commandResponseVersion = "1.0.0"

type commandResponseWire struct {
	envelope
	CommandResponse
}

func (r *CommandResponse) TypeName() string { return commandResponseTypeName }
func (r *CommandResponse) Version() string  { return commandResponseVersion }

func (r *CommandResponse) ToWire() ([]byte, error) {
	return Marshal(commandResponseWire{envelope: newEnvelope(commandResponseTypeName, commandResponseVersion), CommandResponse: *r})
}

func (r *CommandResponse) FromWire(wire []byte) error {
	var w commandResponseWire
	if err := Unmarshal(wire, &w); err != nil {
		return err
	}
	if err := AssertType(w.MessageType, commandResponseTypeName); err != nil {
		return err
	}
	*r = w.CommandResponse
	return nil
}

func (r *CommandResponse) Clone() Message {
	var c = *r
	return &c
}

// TerminateRequest asks a module to begin shutdown after replying.
type TerminateRequest struct{}

const terminateRequestTypeName = "UMPS::Services::Command::TerminateRequest"
const terminateRequestVersion = "1.0.0"

type terminateRequestWire struct{ envelope }

func (r *TerminateRequest) TypeName() string { return terminateRequestTypeName }
func (r *TerminateRequest) Version() string  { return terminateRequestVersion }

func (r *TerminateRequest) ToWire() ([]byte, error) {
	return Marshal(terminateRequestWire{newEnvelope(terminateRequestTypeName, terminateRequestVersion)})
}

func (r *TerminateRequest) FromWire(wire []byte) error {
	var w terminateRequestWire
	if err := Unmarshal(wire, &w); err != nil {
		return err
	}
	return AssertType(w.MessageType, terminateRequestTypeName)
}

func (r *TerminateRequest) Clone() Message { return &TerminateRequest{} }

// TerminateResponse answers TerminateRequest.
type TerminateResponse struct {
	ReturnCode CommandReturnCode `cbor:"ReturnCode" json:"ReturnCode"`
}

const terminateResponseTypeName = "UMPS::Services::Command::TerminateResponse"
const terminateResponseVersion = "1.0.0"

type terminateResponseWire struct {
	envelope
	TerminateResponse
}

func (r *TerminateResponse) TypeName() string { return terminateResponseTypeName }
func (r *TerminateResponse) Version() string  { return terminateResponseVersion }

func (r *TerminateResponse) ToWire() ([]byte, error) {
	return Marshal(terminateResponseWire{envelope: newEnvelope(terminateResponseTypeName, terminateResponseVersion), TerminateResponse: *r})
}

func (r *TerminateResponse) FromWire(wire []byte) error {
	var w terminateResponseWire
	if err := Unmarshal(wire, &w); err != nil {
		return err
	}
	if err := AssertType(w.MessageType, terminateResponseTypeName); err != nil {
		return err
	}
	*r = w.TerminateResponse
	return nil
}

func (r *TerminateResponse) Clone() Message {
	var c = *r
	return &c
}
