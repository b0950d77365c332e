package authentication

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/uofuseismo/umps/message"
)

// ErrUnknownUser is returned when a lookup finds no matching record.
var ErrUnknownUser = errors.New("unknown user")

// UserRecord is one row of the permissioned user store: a name, its
// hashed-password record, and an optional allowlisted public key, per
// Credentials description.
type UserRecord struct {
	Name       string
	Password   *PasswordRecord
	PublicKey  string
	Privileges message.Privileges
}

// UserStore is an in-memory table of UserRecords keyed by name, backing
// a Permissioned authenticator's woodhouse/stonehouse checks.
type UserStore struct {
	mu      sync.RWMutex
	byName  map[string]*UserRecord
	byKey   map[string]*UserRecord
}

// NewUserStore returns an empty UserStore.
func NewUserStore() *UserStore {
	return &UserStore{byName: make(map[string]*UserRecord), byKey: make(map[string]*UserRecord)}
}

// Add inserts or replaces a user record.
func (s *UserStore) Add(record UserRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := record
	s.byName[record.Name] = &stored
	if record.PublicKey != "" {
		s.byKey[record.PublicKey] = &stored
	}
}

// Remove deletes a user record by name.
func (s *UserStore) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.byName[name]; ok {
		delete(s.byKey, existing.PublicKey)
	}
	delete(s.byName, name)
}

// Lookup returns the record for name, or ErrUnknownUser.
func (s *UserStore) Lookup(name string) (*UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.byName[name]
	if !ok {
		return nil, ErrUnknownUser
	}
	return record, nil
}

// LookupByPublicKey returns the record allowlisted under publicKey, or
// ErrUnknownUser.
func (s *UserStore) LookupByPublicKey(publicKey string) (*UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.byKey[publicKey]
	if !ok {
		return nil, ErrUnknownUser
	}
	return record, nil
}
