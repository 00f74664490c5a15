// Package secrets stores remembered dialog passwords. The system keyring is
// used when available; Memory keeps secrets for the life of the process.
package secrets

import (
	"errors"
	"fmt"
	"sync"

	"github.com/zalando/go-keyring"
)

// DefaultService is the keyring service name used by NewKeyring when none
// is given.
const DefaultService = "formdialog"

// Store recalls and saves secrets by key.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Keyring persists secrets in the operating system keyring.
type Keyring struct {
	service string
}

// NewKeyring returns a keyring-backed store under service.
func NewKeyring(service string) *Keyring {
	if service == "" {
		service = DefaultService
	}
	return &Keyring{service: service}
}

// Get returns the secret for key. A missing entry is not an error.
func (k *Keyring) Get(key string) (string, bool, error) {
	value, err := keyring.Get(k.service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("secrets: keyring get %q: %w", key, err)
	}
	return value, true, nil
}

// Set saves value under key.
func (k *Keyring) Set(key, value string) error {
	if key == "" {
		return errors.New("secrets: key cannot be empty")
	}
	if err := keyring.Set(k.service, key, value); err != nil {
		return fmt.Errorf("secrets: keyring set %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key succeeds.
func (k *Keyring) Delete(key string) error {
	err := keyring.Delete(k.service, key)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("secrets: keyring delete %q: %w", key, err)
	}
	return nil
}

// Memory is an in-process store.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty in-process store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	if key == "" {
		return errors.New("secrets: key cannot be empty")
	}
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
	return nil
}

// Probe reports whether the system keyring accepts writes for service.
func Probe(service string) bool {
	if service == "" {
		service = DefaultService
	}
	const probeKey = "formdialog-probe"
	if err := keyring.Set(service, probeKey, "probe"); err != nil {
		return false
	}
	_ = keyring.Delete(service, probeKey)
	return true
}

// Open returns the keyring store when it is usable and an in-memory store
// otherwise.
func Open(service string) Store {
	if Probe(service) {
		return NewKeyring(service)
	}
	return NewMemory()
}
