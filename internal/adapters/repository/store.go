// Package repository holds the in-memory activity registry.
package repository

import (
	"context"

	"github.com/okian/mergington/internal/domain/activity"
)

// Store provides read/write access to the activity registry. The set of
// activity names is fixed when the store is built; only participant lists
// change afterwards.
type Store interface {
	// List returns a snapshot of every activity in catalog order.
	List(ctx context.Context) []activity.Activity

	// Get returns a snapshot of one activity or activity.ErrNotFound.
	Get(ctx context.Context, name string) (activity.Activity, error)

	// Enroll appends email to the named activity.
	// Returns activity.ErrNotFound, activity.ErrAlreadyEnrolled, or
	// activity.ErrActivityFull when capacity enforcement is on.
	Enroll(ctx context.Context, name, email string) error

	// Withdraw removes email from the named activity.
	// Returns activity.ErrNotFound or activity.ErrNotEnrolled.
	Withdraw(ctx context.Context, name, email string) error

	// Count returns the number of activities.
	Count(ctx context.Context) int

	// Participants returns the number of signups across all activities.
	Participants(ctx context.Context) int
}
