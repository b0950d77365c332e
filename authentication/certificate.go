package authentication

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Certificate is a parsed or to-be-written stonehouse key file: the
// line-oriented format uses `curve` / `metadata` block headers,
// `key = "value"` lines, and `#` comments.
type Certificate struct {
	PublicKey  string
	PrivateKey string
	Metadata   map[string]string
}

// NewCertificate wraps a Keys value as a Certificate, ready to write.
func NewCertificate(keys Keys) Certificate {
	return Certificate{PublicKey: keys.PublicKeyText(), PrivateKey: keys.PrivateKeyText(), Metadata: map[string]string{}}
}

// LoadTextFile parses a stonehouse key file at path.
func LoadTextFile(path string) (Certificate, error) {
	file, err := os.Open(path)
	if err != nil {
		return Certificate{}, errors.Wrap(err, "opening certificate file")
	}
	defer file.Close()

	certificate := Certificate{Metadata: map[string]string{}}
	section := ""
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "curve") {
			section = "curve"
			continue
		}
		if strings.HasPrefix(line, "metadata") {
			section = "metadata"
			continue
		}
		key, value, ok := parseKeyValueLine(line)
		if !ok {
			continue
		}
		switch {
		case section == "curve" && key == "public-key":
			certificate.PublicKey = value
		case section == "curve" && key == "secret-key":
			certificate.PrivateKey = value
		case section == "metadata":
			certificate.Metadata[key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return Certificate{}, errors.Wrap(err, "reading certificate file")
	}
	return certificate, nil
}

func parseKeyValueLine(line string) (key, value string, ok bool) {
	idx := strings.Index(line, "=")
	if idx < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:idx])
	value = strings.Trim(strings.TrimSpace(line[idx+1:]), `"`)
	return key, value, true
}

// WritePublicTextFile writes only the public half to path, suitable for
// distributing a server's public key to clients.
func (c Certificate) WritePublicTextFile(path string) error {
	return c.write(path, false)
}

// WriteTextFile writes both halves to path. The secret-key line is
// written with the caller's file creation and must never be shared.
func (c Certificate) WriteTextFile(path string) error {
	return c.write(path, true)
}

func (c Certificate) write(path string, includePrivate bool) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return errors.Wrap(err, "creating certificate file")
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	fmt.Fprintln(writer, "curve")
	fmt.Fprintf(writer, "    public-key = %q\n", c.PublicKey)
	if includePrivate && c.PrivateKey != "" {
		fmt.Fprintf(writer, "    secret-key = %q\n", c.PrivateKey)
	}
	if len(c.Metadata) > 0 {
		fmt.Fprintln(writer, "metadata")
		for key, value := range c.Metadata {
			fmt.Fprintf(writer, "    %s = %q\n", key, value)
		}
	}
	return writer.Flush()
}
