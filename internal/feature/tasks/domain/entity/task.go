// Package entity defines the domain entities for the tasks feature.
package entity

import (
	"time"

	userentity "calendar_backend/internal/feature/auth/domain/entity"
)

// Task represents a to-do item assigned to a calendar day, owned by one user.
type Task struct {
	// ID is the unique identifier for the task.
	ID uint `gorm:"primaryKey"`

	// UserID references the owning user. Every query against tasks is
	// scoped by this column.
	UserID uint `gorm:"index;not null"`

	// User backs the foreign key so that deleting a user cascades to tasks.
	User *userentity.User `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	// Title is the short task summary (1-200 characters).
	Title string `gorm:"size:200;not null"`

	// Description is an optional free-form text (up to 2000 characters).
	Description string `gorm:"size:2000"`

	// Day is the calendar date the task belongs to (midnight UTC).
	Day time.Time `gorm:"type:date;index;not null"`

	// AtTime is the optional time of day in "HH:MM:SS" form, without a zone.
	// Nil means the task has no fixed time and sorts after timed tasks.
	AtTime *string `gorm:"type:time"`

	// Color is an optional free-form label (up to 20 characters).
	Color string `gorm:"size:20"`

	// Completed reports whether the task is done.
	Completed bool `gorm:"not null;default:false"`

	// CreatedAt is the timestamp when the task was created.
	CreatedAt time.Time

	// UpdatedAt is refreshed on every mutation.
	UpdatedAt time.Time
}
