package secret

import (
	"errors"

	"github.com/zalando/go-keyring"
)

// KeyringVault implements Vault on the OS credential facility:
// Keychain on macOS, the Secret Service D-Bus API on Linux, and the
// Credential Manager on Windows.
type KeyringVault struct{}

// NewKeyringVault creates a KeyringVault.
func NewKeyringVault() *KeyringVault {
	return &KeyringVault{}
}

func (v *KeyringVault) Get(service, key string) (string, error) {
	value, err := keyring.Get(service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	return value, err
}

func (v *KeyringVault) Set(service, key, value string) error {
	return keyring.Set(service, key, value)
}

func (v *KeyringVault) Delete(service, key string) error {
	err := keyring.Delete(service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
