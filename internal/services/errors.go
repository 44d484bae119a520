package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidID is returned before any database call when an id could
	// escape the collection path.
	ErrInvalidID = errors.New("invalid announcement id")

	// ErrNotFound means the addressed document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPersistence wraps any failure of the underlying store.
	ErrPersistence = errors.New("persistence failure")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
)

func persistenceError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
