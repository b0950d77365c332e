package authentication

import (
	"github.com/pkg/errors"
	"github.com/uofuseismo/umps/message"
)

// Role distinguishes a socket acting as a ZAP server from one acting as
// a client.
type Role int

const (
	Server Role = iota
	Client
)

// SecurityLevel names one of the four ZAP security modes. It is an
// alias of message.SecurityLevel so the two packages share one ordering
// instead of maintaining parallel enums.
type SecurityLevel = message.SecurityLevel

const (
	Grasslands = message.Grasslands
	Strawhouse = message.Strawhouse
	Woodhouse  = message.Woodhouse
	Stonehouse = message.Stonehouse
)

// ErrInvalidOptions is returned by Validate when the materials present do
// not match what the security level and role require.
var ErrInvalidOptions = errors.New("invalid ZAP options for this security level and role")

// ZAPOptions is a tagged union of the materials a socket needs to apply
// ZAP settings before binding or connecting, keyed by {level, role}.
//
//	Grasslands  --                                    --
//	Strawhouse  zap_domain                             --
//	Woodhouse   zap_domain                              zap_domain, (user, password)
//	Stonehouse  zap_domain, server keypair               zap_domain, server public key, client keypair
type ZAPOptions struct {
	Level  SecurityLevel
	Role   Role
	Domain string

	// Woodhouse client.
	Credentials Credentials

	// Stonehouse server: its own keypair. Stonehouse client: the server's
	// public key plus the client's own keypair.
	ServerKeys Keys
	ClientKeys Keys
}

// NewGrasslandsOptions returns options that apply no ZAP restriction.
func NewGrasslandsOptions() ZAPOptions {
	return ZAPOptions{Level: Grasslands}
}

// NewStrawhouseOptions returns options that gate only on the ZAP domain
// (in practice, the IP blacklist an authenticator enforces).
func NewStrawhouseOptions(domain string) ZAPOptions {
	return ZAPOptions{Level: Strawhouse, Domain: domain}
}

// NewWoodhouseServerOptions returns server-side options for a
// username/password-gated socket.
func NewWoodhouseServerOptions(domain string) ZAPOptions {
	return ZAPOptions{Level: Woodhouse, Role: Server, Domain: domain}
}

// NewWoodhouseClientOptions returns client-side options carrying the
// credentials to submit.
func NewWoodhouseClientOptions(domain string, credentials Credentials) ZAPOptions {
	return ZAPOptions{Level: Woodhouse, Role: Client, Domain: domain, Credentials: credentials}
}

// NewStonehouseServerOptions returns server-side options carrying the
// server's own keypair.
func NewStonehouseServerOptions(domain string, serverKeys Keys) ZAPOptions {
	return ZAPOptions{Level: Stonehouse, Role: Server, Domain: domain, ServerKeys: serverKeys}
}

// NewStonehouseClientOptions returns client-side options carrying the
// server's public key and the client's own keypair.
func NewStonehouseClientOptions(domain string, serverPublicKey, clientKeys Keys) ZAPOptions {
	return ZAPOptions{Level: Stonehouse, Role: Client, Domain: domain, ServerKeys: serverPublicKey, ClientKeys: clientKeys}
}

// Validate checks that the materials present on o satisfy its declared
// Level and Role.
func (o ZAPOptions) Validate() error {
	switch o.Level {
	case Grasslands:
		return nil
	case Strawhouse:
		if o.Domain == "" {
			return errors.Wrap(ErrInvalidOptions, "strawhouse requires a non-empty zap domain")
		}
		return nil
	case Woodhouse:
		if o.Domain == "" {
			return errors.Wrap(ErrInvalidOptions, "woodhouse requires a non-empty zap domain")
		}
		if o.Role == Client && o.Credentials.User == "" {
			return errors.Wrap(ErrInvalidOptions, "woodhouse client requires credentials")
		}
		return nil
	case Stonehouse:
		if o.Domain == "" {
			return errors.Wrap(ErrInvalidOptions, "stonehouse requires a non-empty zap domain")
		}
		if o.Role == Server {
			if !o.ServerKeys.IsValid() || !o.ServerKeys.HasPrivateKey() {
				return errors.Wrap(ErrInvalidOptions, "stonehouse server requires its own keypair")
			}
			return nil
		}
		if !o.ServerKeys.IsValid() {
			return errors.Wrap(ErrInvalidOptions, "stonehouse client requires the server's public key")
		}
		if !o.ClientKeys.IsValid() || !o.ClientKeys.HasPrivateKey() {
			return errors.Wrap(ErrInvalidOptions, "stonehouse client requires its own keypair")
		}
		return nil
	default:
		return errors.Wrap(ErrInvalidOptions, "unknown security level")
	}
}
