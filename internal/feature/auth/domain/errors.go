// Package domain defines domain-level errors for the auth feature.
package domain

import "errors"

// Domain errors for authentication operations.
// These errors represent business logic failures and should be handled appropriately by upper layers.
var (
	// ErrInvalidCredentials indicates that the provided credentials are incorrect.
	// It is deliberately the same for "no such account" and "wrong password"
	// so that responses never reveal whether an email is registered.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
