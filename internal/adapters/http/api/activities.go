// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"

	"github.com/okian/mergington/internal/domain/types"
	"github.com/okian/mergington/pkg/logger"
)

// ActivitiesHandler serves the activity listing and membership routes.
type ActivitiesHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewActivitiesHandler creates a new activities handler.
func NewActivitiesHandler(deps Dependencies, log logger.Logger) *ActivitiesHandler {
	return &ActivitiesHandler{deps: deps, logger: log}
}

// HandleList handles GET /activities.
func (h *ActivitiesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	acts, err := h.deps.ListActivities(r.Context())
	if err != nil {
		h.fail(w, r, "api.list_activities", err)
		return
	}
	writeJSON(w, http.StatusOK, types.FromActivities(acts))
}

// HandleSignup handles POST /activities/{name}/signup?email=.
func (h *ActivitiesHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	const op = "api.signup"
	name := r.PathValue("name")
	email, err := emailParam(r)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}

	m, err := h.deps.Enroll(r.Context(), name, email)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, types.Message{
		Message: fmt.Sprintf("Signed up %s for %s", m.Email, m.Activity),
	})
}

// HandleUnregister handles DELETE /activities/{name}/unregister?email=.
func (h *ActivitiesHandler) HandleUnregister(w http.ResponseWriter, r *http.Request) {
	const op = "api.unregister"
	name := r.PathValue("name")
	email, err := emailParam(r)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}

	m, err := h.deps.Withdraw(r.Context(), name, email)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, types.Message{
		Message: fmt.Sprintf("Unregistered %s from %s", m.Email, m.Activity),
	})
}

// emailParam returns the email query parameter. The value is opaque; only
// its absence is an error.
func emailParam(r *http.Request) (string, error) {
	q := r.URL.Query()
	if !q.Has("email") {
		return "", ErrMissingEmail
	}
	return q.Get("email"), nil
}

func (h *ActivitiesHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, detail := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed",
			logger.String("op", op),
			logger.String("requestID", RequestIDFromContext(r.Context())),
			logger.Error(err),
		)
	}
	writeError(w, status, detail)
}
