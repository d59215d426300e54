package secret

import (
	"errors"
	"fmt"
)

// Service is the namespace under which all credentials are stored
// in the platform vault.
const Service = "world-monitor"

// supportedKeys is the closed set of credential names the UI may
// read, write, or delete. The sidecar and frontend reference these
// names verbatim, so order and spelling are part of the contract.
var supportedKeys = []string{
	"GROQ_API_KEY",
	"OPENROUTER_API_KEY",
	"FRED_API_KEY",
	"EIA_API_KEY",
	"CLOUDFLARE_API_TOKEN",
	"ACLED_ACCESS_TOKEN",
	"WINGBITS_API_KEY",
	"WS_RELAY_URL",
	"VITE_OPENSKY_RELAY_URL",
	"OPENSKY_CLIENT_ID",
	"OPENSKY_CLIENT_SECRET",
	"AISSTREAM_API_KEY",
	"VITE_WS_RELAY_URL",
}

// ErrNotFound is returned by a Vault when no entry exists for a key.
var ErrNotFound = errors.New("secret not found")

// Vault is the platform credential backend. Implementations store
// one opaque value per (service, key) pair and must return
// ErrNotFound (possibly wrapped) when no entry exists.
type Vault interface {
	Get(service, key string) (string, error)
	Set(service, key, value string) error
	Delete(service, key string) error
}

// UnsupportedKeyError reports a key outside the allow-list. No vault
// access happens for such keys.
type UnsupportedKeyError struct {
	Key string
}

func (e *UnsupportedKeyError) Error() string {
	return fmt.Sprintf("unsupported secret key: %s", e.Key)
}

// VaultError reports a failed vault round-trip. A missing entry is
// not a VaultError; reads and deletes treat absence as success.
type VaultError struct {
	Op  string // "get", "set" or "delete"
	Key string
	Err error
}

func (e *VaultError) Error() string {
	return fmt.Sprintf("vault %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *VaultError) Unwrap() error { return e.Err }

// Store validates keys against the allow-list and forwards to the
// platform vault. It holds no state of its own: every operation is a
// direct round-trip, so concurrent callers rely on the vault's own
// serialization.
type Store struct {
	vault   Vault
	service string
}

// NewStore creates a Store over the given vault backend.
func NewStore(vault Vault) *Store {
	return &Store{vault: vault, service: Service}
}

// SupportedKeys returns the allow-list in its declared order.
func (s *Store) SupportedKeys() []string {
	keys := make([]string, len(supportedKeys))
	copy(keys, supportedKeys)
	return keys
}

func (s *Store) validate(key string) error {
	for _, k := range supportedKeys {
		if k == key {
			return nil
		}
	}
	return &UnsupportedKeyError{Key: key}
}

// Get looks up the value for key. A key that was never set (or was
// deleted) yields ("", false, nil); only a vault failure is an error.
func (s *Store) Get(key string) (string, bool, error) {
	if err := s.validate(key); err != nil {
		return "", false, err
	}
	value, err := s.vault.Get(s.service, key)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &VaultError{Op: "get", Key: key, Err: err}
	}
	return value, true, nil
}

// Set writes or overwrites the value for key. Last writer wins.
func (s *Store) Set(key, value string) error {
	if err := s.validate(key); err != nil {
		return err
	}
	if err := s.vault.Set(s.service, key, value); err != nil {
		return &VaultError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Delete removes the stored value for key. Deleting a key with no
// stored record is a success.
func (s *Store) Delete(key string) error {
	if err := s.validate(key); err != nil {
		return err
	}
	err := s.vault.Delete(s.service, key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return &VaultError{Op: "delete", Key: key, Err: err}
	}
	return nil
}
