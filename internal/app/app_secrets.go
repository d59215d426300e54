package app

// ============================================================
// Secret commands
// ============================================================
//
// Each command round-trips to the platform vault; the App keeps no
// secret material in memory. Errors propagate to the frontend as the
// binding's rejected promise.

// ListSupportedSecretKeys returns the allow-listed credential names
// in their declared order.
func (a *App) ListSupportedSecretKeys() []string {
	return a.secrets.SupportedKeys()
}

// GetSecret returns the stored value for key, or nil if no value has
// been set. Unsupported keys and vault failures are errors.
func (a *App) GetSecret(key string) (*string, error) {
	value, found, err := a.secrets.Get(key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &value, nil
}

// SetSecret writes or overwrites the value for key.
func (a *App) SetSecret(key, value string) error {
	return a.secrets.Set(key, value)
}

// DeleteSecret removes the stored value for key. Deleting a key that
// was never set succeeds.
func (a *App) DeleteSecret(key string) error {
	return a.secrets.Delete(key)
}
