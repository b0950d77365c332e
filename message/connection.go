package message

// SocketType enumerates the eight socket primitives.
type SocketType int

const (
	SocketPublisher SocketType = iota
	SocketSubscriber
	SocketXPublisher
	SocketXSubscriber
	SocketRequest
	SocketReply
	SocketRouter
	SocketDealer
)

// ConnectOrBind describes whether a SocketDetails address was bound or
// connected to.
type ConnectOrBind int

const (
	Bind ConnectOrBind = iota
	Connect
)

// SecurityLevel is the ZAP security mode in force on a socket, per
// /§4.4.
type SecurityLevel int

const (
	Grasslands SecurityLevel = iota
	Strawhouse
	Woodhouse
	Stonehouse
)

func (s SecurityLevel) String() string {
	switch s {
	case Grasslands:
		return "Grasslands"
	case Strawhouse:
		return "Strawhouse"
	case Woodhouse:
		return "Woodhouse"
	case Stonehouse:
		return "Stonehouse"
	default:
		return "Unknown"
	}
}

// SocketDetails is the wire-transmissible description of one bound or
// connected socket.
type SocketDetails struct {
	Address        string        `cbor:"Address" json:"Address"`
	SocketType     SocketType    `cbor:"SocketType" json:"SocketType"`
	ConnectOrBind  ConnectOrBind `cbor:"ConnectOrBind" json:"ConnectOrBind"`
	SecurityLevel  SecurityLevel `cbor:"SecurityLevel" json:"SecurityLevel"`
	MinPrivileges  Privileges    `cbor:"MinimumUserPrivileges" json:"MinimumUserPrivileges"`
}

// ProxySocketDetails pairs a proxy's frontend and backend SocketDetails.
type ProxySocketDetails struct {
	Frontend SocketDetails `cbor:"Frontend" json:"Frontend"`
	Backend  SocketDetails `cbor:"Backend" json:"Backend"`
}

// ConnectionType distinguishes a Broadcast endpoint pair from a Service
// endpoint pair.
type ConnectionType int

const (
	ConnectionBroadcast ConnectionType = iota
	ConnectionService
	ConnectionOther
)

// ConnectionDetails is one entry in the connection-information directory's
// catalogue/§4.6.
type ConnectionDetails struct {
	Name           string              `cbor:"Name" json:"Name"`
	ConnectionType ConnectionType      `cbor:"ConnectionType" json:"ConnectionType"`
	SocketDetails  ProxySocketDetails  `cbor:"SocketDetails" json:"SocketDetails"`
	SecurityLevel  SecurityLevel       `cbor:"SecurityLevel" json:"SecurityLevel"`
	MinPrivileges  Privileges          `cbor:"MinimumUserPrivileges" json:"MinimumUserPrivileges"`
}

// ReturnCode is the status of a directory or service response.
type ReturnCode int

const (
	Success ReturnCode = iota
	InvalidMessage
	AlgorithmFailure
	NotFound
)

// AvailableConnectionsRequest asks the operator for its full catalogue.
type AvailableConnectionsRequest struct{}

const availableConnectionsRequestTypeName = "UMPS::Services::ConnectionInformation::AvailableConnectionsRequest"
const availableConnectionsRequestVersion = "1.0.0"

type availableConnectionsRequestWire struct {
	envelope
}

func (r *AvailableConnectionsRequest) TypeName() string { return availableConnectionsRequestTypeName }
func (r *AvailableConnectionsRequest) Version() string  { return availableConnectionsRequestVersion }

func (r *AvailableConnectionsRequest) ToWire() ([]byte, error) {
	return Marshal(availableConnectionsRequestWire{newEnvelope(availableConnectionsRequestTypeName, availableConnectionsRequestVersion)})
}

func (r *AvailableConnectionsRequest) FromWire(wire []byte) error {
	var w availableConnectionsRequestWire
	if err := Unmarshal(wire, &w); err != nil {
		return err
	}
	return AssertType(w.MessageType, availableConnectionsRequestTypeName)
}

func (r *AvailableConnectionsRequest) Clone() Message { return &AvailableConnectionsRequest{} }

// AvailableConnectionsResponse answers AvailableConnectionsRequest.
type AvailableConnectionsResponse struct {
	Details    []ConnectionDetails `cbor:"Details" json:"Details"`
	ReturnCode ReturnCode          `cbor:"ReturnCode" json:"ReturnCode"`
}

const availableConnectionsResponseTypeName = "UMPS::Services::ConnectionInformation::AvailableConnectionsResponse"
const availableConnectionsResponseVersion = "1.0.0"

type availableConnectionsResponseWire struct {
	envelope
	AvailableConnectionsResponse
}

func (r *AvailableConnectionsResponse) TypeName() string {
	return availableConnectionsResponseTypeName
}
func (r *AvailableConnectionsResponse) Version() string { return availableConnectionsResponseVersion }

func (r *AvailableConnectionsResponse) ToWire() ([]byte, error) {
	return Marshal(availableConnectionsResponseWire{
		envelope:                     newEnvelope(availableConnectionsResponseTypeName, availableConnectionsResponseVersion),
		AvailableConnectionsResponse: *r,
	})
}

func (r *AvailableConnectionsResponse) FromWire(wire []byte) error {
	var w availableConnectionsResponseWire
	if err := Unmarshal(wire, &w); err != nil {
		return err
	}
	if err := AssertType(w.MessageType, availableConnectionsResponseTypeName); err != nil {
		return err
	}
	*r = w.AvailableConnectionsResponse
	return nil
}

func (r *AvailableConnectionsResponse) Clone() Message {
	var c = *r
	c.Details = append([]ConnectionDetails(nil), r.Details...)
	return &c
}

// ApplicationStatus is the liveness of a locally-run module.
type ApplicationStatus int

const (
	Running ApplicationStatus = iota
	Paused
	UnknownStatus
	NotRunning
)

// LocalModuleDetails is one row of the process table.
type LocalModuleDetails struct {
	ModuleName        string            `cbor:"ModuleName" json:"ModuleName"`
	IPCFilePath       string            `cbor:"IPCFilePath" json:"IPCFilePath"`
	ProcessIdentifier int               `cbor:"ProcessIdentifier" json:"ProcessIdentifier"`
	ApplicationStatus ApplicationStatus `cbor:"ApplicationStatus" json:"ApplicationStatus"`
}

// AvailableModulesRequest asks a process table for the set of modules it
// knows about.
type AvailableModulesRequest struct{}

const availableModulesRequestTypeName = "UMPS::Services::Command::AvailableModulesRequest"
const availableModulesRequestVersion = "1.0.0"

type availableModulesRequestWire struct{ envelope }

func (r *AvailableModulesRequest) TypeName() string { return availableModulesRequestTypeName }
func (r *AvailableModulesRequest) Version() string  { return availableModulesRequestVersion }

func (r *AvailableModulesRequest) ToWire() ([]byte, error) {
	return Marshal(availableModulesRequestWire{newEnvelope(availableModulesRequestTypeName, availableModulesRequestVersion)})
}

func (r *AvailableModulesRequest) FromWire(wire []byte) error {
	var w availableModulesRequestWire
	if err := Unmarshal(wire, &w); err != nil {
		return err
	}
	return AssertType(w.MessageType, availableModulesRequestTypeName)
}

func (r *AvailableModulesRequest) Clone() Message { return &AvailableModulesRequest{} }

// AvailableModulesResponse answers AvailableModulesRequest.
type AvailableModulesResponse struct {
	Modules []LocalModuleDetails `cbor:"Modules" json:"Modules"`
}

const availableModulesResponseTypeName = "UMPS::Services::Command::AvailableModulesResponse"
const availableModulesResponseVersion = "1.0.0"

type availableModulesResponseWire struct {
	envelope
	AvailableModulesResponse
}

func (r *AvailableModulesResponse) TypeName() string { return availableModulesResponseTypeName }
func (r *AvailableModulesResponse) Version() string  { return availableModulesResponseVersion }

func (r *AvailableModulesResponse) ToWire() ([]byte, error) {
	return Marshal(availableModulesResponseWire{
		envelope:                 newEnvelope(availableModulesResponseTypeName, availableModulesResponseVersion),
		AvailableModulesResponse: *r,
	})
}

func (r *AvailableModulesResponse) FromWire(wire []byte) error {
	var w availableModulesResponseWire
	if err := Unmarshal(wire, &w); err != nil {
		return err
	}
	if err := AssertType(w.MessageType, availableModulesResponseTypeName); err != nil {
		return err
	}
	*r = w.AvailableModulesResponse
	return nil
}

func (r *AvailableModulesResponse) Clone() Message {
	var c = *r
	c.Modules = append([]LocalModuleDetails(nil), r.Modules...)
	return &c
}
