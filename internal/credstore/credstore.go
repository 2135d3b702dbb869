// Package credstore persists FileMaker accounts in the OS keychain or
// credential store, keyed by server host, so the CLI does not need the
// password on every invocation.
package credstore

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

// serviceName identifies the credential store namespace.
const serviceName = "fmq"

// ErrNotFound is returned when no credentials are stored for a host.
var ErrNotFound = errors.New("credstore: no stored credentials")

// Credentials is a stored FileMaker account.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func openRing() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}

	return ring, nil
}

// Save stores the account for host, replacing any previous entry.
func Save(host string, creds Credentials) error {
	ring, err := openRing()
	if err != nil {
		return err
	}

	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}

	if err := ring.Set(keyring.Item{
		Key:   host,
		Label: "FileMaker account for " + host,
		Data:  data,
	}); err != nil {
		return fmt.Errorf("storing credentials: %w", err)
	}

	return nil
}

// Load returns the stored account for host.
func Load(host string) (Credentials, error) {
	var creds Credentials

	ring, err := openRing()
	if err != nil {
		return creds, err
	}

	item, err := ring.Get(host)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return creds, ErrNotFound
		}
		return creds, fmt.Errorf("reading credentials: %w", err)
	}

	if err := json.Unmarshal(item.Data, &creds); err != nil {
		return creds, fmt.Errorf("decoding credentials: %w", err)
	}

	return creds, nil
}

// Clear removes the stored account for host. Clearing a host with no
// entry is not an error.
func Clear(host string) error {
	ring, err := openRing()
	if err != nil {
		return err
	}

	if err := ring.Remove(host); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("removing credentials: %w", err)
	}

	return nil
}
