package api

import (
	"errors"
	"net/http"

	"github.com/okian/mergington/internal/domain/activity"
	"github.com/okian/mergington/internal/domain/types"
)

// Sentinel kinds for API errors.
var (
	ErrMissingEmail = errors.New("email query parameter is required")
)

// Detail texts returned to clients. They are part of the public contract.
const (
	detailNotFound        = "Activity not found"
	detailAlreadyEnrolled = "Student is already signed up"
	detailNotEnrolled     = "Student is not registered for this activity"
	detailFull            = "Activity is full"
)

// statusFor maps domain errors to an HTTP status and client-facing detail.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, activity.ErrNotFound):
		return http.StatusNotFound, detailNotFound
	case errors.Is(err, activity.ErrAlreadyEnrolled):
		return http.StatusBadRequest, detailAlreadyEnrolled
	case errors.Is(err, activity.ErrNotEnrolled):
		return http.StatusBadRequest, detailNotEnrolled
	case errors.Is(err, activity.ErrActivityFull):
		return http.StatusBadRequest, detailFull
	case errors.Is(err, ErrMissingEmail):
		return http.StatusUnprocessableEntity, ErrMissingEmail.Error()
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, types.ErrorDetail{Detail: detail})
}
