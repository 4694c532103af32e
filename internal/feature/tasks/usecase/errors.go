// Package usecase implements the business logic for the tasks feature.
package usecase

import "errors"

var (
	// ErrTaskNotFound is returned when no task with the requested ID is owned
	// by the current user. A task owned by someone else yields the same error.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidMonth is returned when a month filter is not a valid "YYYY-MM".
	ErrInvalidMonth = errors.New("invalid month format, use YYYY-MM")
)
