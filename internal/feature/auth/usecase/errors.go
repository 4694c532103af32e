// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to register an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already registered")

	// ErrInvalidCredentials is returned when email/password authentication fails.
	// It deliberately does not distinguish "no such user" from "wrong password".
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrUserInactive is returned when a deactivated user is resolved from a token.
	ErrUserInactive = errors.New("user is inactive")
)
