// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrOTPNotFound is returned when no reset is pending for the user.
	ErrOTPNotFound = errors.New("no pending password change")

	// ErrOTPExpired is returned when the pending entry has passed its window,
	// regardless of whether the supplied code matches.
	ErrOTPExpired = errors.New("one-time password has expired")

	// ErrOTPMismatch is returned when the supplied code is wrong.
	// The pending entry stays live so the user can retry.
	ErrOTPMismatch = errors.New("one-time password does not match")
)
