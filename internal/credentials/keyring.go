// Package credentials stores the Jira API token in the OS keyring.
package credentials

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// Service is the keyring service name tokens are stored under.
const Service = "lt"

// ErrNoToken indicates no token is stored for the user.
var ErrNoToken = errors.New("no token in keyring")

// Store reads and writes tokens keyed by Jira user name.
type Store interface {
	Token(user string) (string, error)
	SaveToken(user, token string) error
	DeleteToken(user string) error
}

// Keyring is the Store backed by the system keyring.
type Keyring struct {
	service string
}

// NewKeyring creates a Keyring using Service.
func NewKeyring() *Keyring {
	return &Keyring{service: Service}
}

func (k *Keyring) Token(user string) (string, error) {
	if user == "" {
		return "", ErrNoToken
	}
	token, err := keyring.Get(k.service, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("reading token for %s: %w", user, err)
	}
	return token, nil
}

func (k *Keyring) SaveToken(user, token string) error {
	if err := keyring.Set(k.service, user, token); err != nil {
		return fmt.Errorf("saving token for %s: %w", user, err)
	}
	return nil
}

// DeleteToken returns ErrNoToken when nothing was stored.
func (k *Keyring) DeleteToken(user string) error {
	if user == "" {
		return ErrNoToken
	}
	if err := keyring.Delete(k.service, user); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNoToken
		}
		return fmt.Errorf("deleting token for %s: %w", user, err)
	}
	return nil
}
