// Package common holds the error kinds shared by the store, service and web
// layers. Callers match them with errors.Is / errors.As.
package common

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no post has the requested id.
	ErrNotFound = errors.New("not found")

	// ErrIncorrectPassword is returned by the password gate when the submitted
	// password does not match the stored one.
	ErrIncorrectPassword = errors.New("incorrect password")
)

// StoreError wraps any failure talking to the data store.
type StoreError struct {
	Op  string
	Err error
}

func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsStoreError reports whether err carries a StoreError.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
