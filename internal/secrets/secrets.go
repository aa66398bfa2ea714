// Package secrets stores the SteamGridDB API key. The OS keyring is the
// primary backend, with an environment variable override for headless use.
package secrets

import (
	"errors"
	"os"

	"github.com/zalando/go-keyring"
)

const (
	// Service is the keyring service name for this tool's entries.
	Service = "nonsteam"
	// Account is the keyring account under which the API key is stored.
	Account = "steamgriddb"
	// EnvAPIKey overrides the stored API key when set.
	EnvAPIKey = "STEAMGRIDDB_API_KEY"
)

// ErrNotFound means no API key is stored in any backend.
var ErrNotFound = errors.New("api key not found")

// Store reads and writes a single secret.
type Store interface {
	Get() (string, error)
	Set(value string) error
	Delete() error
}

// Keyring stores the secret in the OS keyring.
type Keyring struct {
	service string
	account string
}

// NewKeyring creates a keyring store for the default service and account.
func NewKeyring() *Keyring {
	return &Keyring{service: Service, account: Account}
}

// Get reads the secret from the keyring.
func (k *Keyring) Get() (string, error) {
	value, err := keyring.Get(k.service, k.account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set writes the secret to the keyring.
func (k *Keyring) Set(value string) error {
	return keyring.Set(k.service, k.account, value)
}

// Delete removes the secret from the keyring.
func (k *Keyring) Delete() error {
	err := keyring.Delete(k.service, k.account)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// Env reads the secret from an environment variable. Set and Delete are
// rejected: the process does not own its parent's environment.
type Env struct {
	name string
}

// NewEnv creates an environment variable store for EnvAPIKey.
func NewEnv() *Env {
	return &Env{name: EnvAPIKey}
}

// Get reads the secret from the environment.
func (e *Env) Get() (string, error) {
	if value := os.Getenv(e.name); value != "" {
		return value, nil
	}
	return "", ErrNotFound
}

// Set is not supported for the environment backend.
func (e *Env) Set(string) error {
	return errors.New("cannot store secrets in the environment")
}

// Delete is a no-op, the environment backend holds nothing of its own.
func (e *Env) Delete() error {
	return nil
}

// Chain queries stores in order and returns the first secret found. Writes
// go to the first store that accepts them.
type Chain struct {
	stores []Store
}

// NewChain creates a chain over the given stores.
func NewChain(stores ...Store) *Chain {
	return &Chain{stores: stores}
}

// DefaultChain resolves the API key from the environment first, then the
// OS keyring.
func DefaultChain() *Chain {
	return NewChain(NewEnv(), NewKeyring())
}

// Get returns the first secret found in the chain.
func (c *Chain) Get() (string, error) {
	for _, s := range c.stores {
		value, err := s.Get()
		if err == nil {
			return value, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return "", err
		}
	}
	return "", ErrNotFound
}

// Set stores the secret in the first store that accepts it.
func (c *Chain) Set(value string) error {
	var lastErr error
	for _, s := range c.stores {
		if err := s.Set(value); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}
	if lastErr == nil {
		lastErr = errors.New("no secret store available")
	}
	return lastErr
}

// Delete removes the secret from every store that holds it.
func (c *Chain) Delete() error {
	var lastErr error
	for _, s := range c.stores {
		if err := s.Delete(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
