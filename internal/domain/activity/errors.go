package activity

import "errors"

// Sentinel kinds for registry errors. Callers match them with errors.Is.
var (
	ErrNotFound        = errors.New("activity not found")
	ErrAlreadyEnrolled = errors.New("student is already signed up")
	ErrNotEnrolled     = errors.New("student is not registered for this activity")
	ErrActivityFull    = errors.New("activity is full")
	ErrInvalidCatalog  = errors.New("invalid activity catalog")
)
