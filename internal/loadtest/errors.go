package loadtest

import "errors"

// Error constants.
var (
	ErrUnhealthy     = errors.New("service health check failed")
	ErrNoActivities  = errors.New("no activities returned")
	ErrUnexpected    = errors.New("unexpected response")
	ErrVerification  = errors.New("verification failed")
	ErrInvalidConfig = errors.New("invalid load test config")
)
