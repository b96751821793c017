// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/mergington/internal/domain/activity"
	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ListActivities(ctx context.Context) ([]activity.Activity, error)
	Enroll(ctx context.Context, name, email string) (model.Membership, error)
	Withdraw(ctx context.Context, name, email string) (model.Membership, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	activitiesHandler *ActivitiesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, log logger.Logger) *Server {
	if log == nil {
		log = logger.Get().Named("api")
	}
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		activitiesHandler: NewActivitiesHandler(deps, log),
	}
}

// Register attaches all HTTP routes to mux. Activity names are matched as a
// single path segment and arrive percent-decoded via r.PathValue.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("GET /healthz", chain(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("GET /stats", chain(s.statsHandler.HandleStats, "stats"))
	mux.Handle("GET /activities", chain(s.activitiesHandler.HandleList, "activities"))
	mux.Handle("POST /activities/{name}/signup", chain(s.activitiesHandler.HandleSignup, "signup"))
	mux.Handle("DELETE /activities/{name}/unregister", chain(s.activitiesHandler.HandleUnregister, "unregister"))
}

func chain(h http.HandlerFunc, endpoint string) http.Handler {
	return RequestIDMiddleware(MetricsMiddleware(h, endpoint))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
