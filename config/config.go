// Package config loads ini-style configuration files into typed structs,
// via gopkg.in/ini.v1.
package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/uofuseismo/umps/message"
	"gopkg.in/ini.v1"
)

// Socket is the recognised key set of one socket-bearing section:
// `{ address, frontendAddress, backendAddress,
// frontendHighWaterMark, backendHighWaterMark, zapDomain,
// securityLevel, serverPublicKeyFile, serverPrivateKeyFile,
// clientPublicKeyFile, clientPrivateKeyFile, clientUserName,
// clientPassword, verbosity, pingInterval_N, moduleName,
// ipcDirectory }`.
type Socket struct {
	Address               string
	FrontendAddress       string
	BackendAddress        string
	FrontendHighWaterMark int
	BackendHighWaterMark  int
	ZAPDomain             string
	SecurityLevel         message.SecurityLevel
	ServerPublicKeyFile   string
	ServerPrivateKeyFile  string
	ClientPublicKeyFile   string
	ClientPrivateKeyFile  string
	ClientUserName        string
	ClientPassword        string
	Verbosity             int
	PingIntervalSeconds   int
	ModuleName            string
	IPCDirectory          string
}

// Config holds every named `[section]` of a loaded ini file, keyed by
// section name so a process can enumerate and initialize every
// broadcast/service it names.
type Config struct {
	Sections map[string]Socket
}

func parseSecurityLevel(text string) message.SecurityLevel {
	switch text {
	case "Strawhouse":
		return message.Strawhouse
	case "Woodhouse":
		return message.Woodhouse
	case "Stonehouse":
		return message.Stonehouse
	default:
		return message.Grasslands
	}
}

// Load parses an ini file at path into a Config, then applies the
// UMPS_USER/UMPS_PASSWORD environment overrides.
func Load(path string) (Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "loading ini configuration")
	}

	config := Config{Sections: make(map[string]Socket)}
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		socket := Socket{
			Address:               section.Key("address").String(),
			FrontendAddress:       section.Key("frontendAddress").String(),
			BackendAddress:        section.Key("backendAddress").String(),
			FrontendHighWaterMark: section.Key("frontendHighWaterMark").MustInt(0),
			BackendHighWaterMark:  section.Key("backendHighWaterMark").MustInt(0),
			ZAPDomain:             section.Key("zapDomain").String(),
			SecurityLevel:         parseSecurityLevel(section.Key("securityLevel").String()),
			ServerPublicKeyFile:   section.Key("serverPublicKeyFile").String(),
			ServerPrivateKeyFile:  section.Key("serverPrivateKeyFile").String(),
			ClientPublicKeyFile:   section.Key("clientPublicKeyFile").String(),
			ClientPrivateKeyFile:  section.Key("clientPrivateKeyFile").String(),
			ClientUserName:        section.Key("clientUserName").String(),
			ClientPassword:        section.Key("clientPassword").String(),
			Verbosity:             section.Key("verbosity").MustInt(0),
			PingIntervalSeconds:   section.Key("pingInterval_N").MustInt(30),
			ModuleName:            section.Key("moduleName").String(),
			IPCDirectory:          section.Key("ipcDirectory").String(),
		}
		applyEnvOverrides(&socket)
		config.Sections[section.Name()] = socket
	}
	return config, nil
}

// applyEnvOverrides overrides ini-file credentials with UMPS_USER and
// UMPS_PASSWORD when present and non-empty.
func applyEnvOverrides(socket *Socket) {
	if user := os.Getenv("UMPS_USER"); user != "" {
		socket.ClientUserName = user
	}
	if password := os.Getenv("UMPS_PASSWORD"); password != "" {
		socket.ClientPassword = password
	}
}
