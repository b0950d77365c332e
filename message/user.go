package message

// Privileges is the access level granted to a user, ordered so that
// Privileges(x) >= required is a valid authorization check.
type Privileges int

const (
	ReadOnly Privileges = iota
	ReadWrite
	Administrator
)

// User is the wire-transmissible projection of an authentication user
// record. It never carries a plaintext password -- only an
// already-hashed one; the server never stores or transmits plaintext.
type User struct {
	Name           string     `cbor:"Name" json:"Name"`
	Email          string     `cbor:"Email,omitempty" json:"Email,omitempty"`
	HashedPassword string     `cbor:"HashedPassword,omitempty" json:"HashedPassword,omitempty"`
	PublicKey      string     `cbor:"PublicKey,omitempty" json:"PublicKey,omitempty"`
	Identifier     int        `cbor:"Identifier,omitempty" json:"Identifier,omitempty"`
	Privileges     Privileges `cbor:"Privileges" json:"Privileges"`
}

const userTypeName = "UMPS::Messaging::Authentication::User"
const userVersion = "1.0.0"

type userWire struct {
	envelope
	User
}

func (u *User) TypeName() string { return userTypeName }
func (u *User) Version() string  { return userVersion }

func (u *User) ToWire() ([]byte, error) {
	return Marshal(userWire{envelope: newEnvelope(userTypeName, userVersion), User: *u})
}

func (u *User) FromWire(wire []byte) error {
	var w userWire
	if err := Unmarshal(wire, &w); err != nil {
		return err
	}
	if err := AssertType(w.MessageType, userTypeName); err != nil {
		return err
	}
	*u = w.User
	return nil
}

func (u *User) Clone() Message {
	var c = *u
	return &c
}

// RegistrationRequest asks the connection-information directory to add (or
// refresh) a named endpoint's catalogue entry.
type RegistrationRequest struct {
	Name string `cbor:"Name" json:"Name"`
}

const registrationRequestTypeName = "UMPS::Services::ConnectionInformation::RegistrationRequest"
const registrationRequestVersion = "1.0.0"

type registrationRequestWire struct {
	envelope
	RegistrationRequest
}

func (r *RegistrationRequest) TypeName() string { return registrationRequestTypeName }
func (r *RegistrationRequest) Version() string  { return registrationRequestVersion }

func (r *RegistrationRequest) ToWire() ([]byte, error) {
	return Marshal(registrationRequestWire{envelope: newEnvelope(registrationRequestTypeName, registrationRequestVersion), RegistrationRequest: *r})
}

func (r *RegistrationRequest) FromWire(wire []byte) error {
	var w registrationRequestWire
	if err := Unmarshal(wire, &w); err != nil {
		return err
	}
	if err := AssertType(w.MessageType, registrationRequestTypeName); err != nil {
		return err
	}
	*r = w.RegistrationRequest
	return nil
}

func (r *RegistrationRequest) Clone() Message {
	var c = *r
	return &c
}
