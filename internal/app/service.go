// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/mergington/internal/adapters/repository"
	"github.com/okian/mergington/internal/domain/activity"
	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/pkg/logger"
	"github.com/okian/mergington/pkg/metrics"
)

// Service implements the API dependencies for the activity registry.
type Service struct {
	mu sync.RWMutex

	store *repository.MemoryStore

	// Configuration
	catalog         []activity.Activity
	enforceCapacity bool

	// State
	started   bool
	startedAt time.Time

	logger logger.Logger
	now    func() time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCatalog replaces the built-in activity catalog.
func WithCatalog(acts []activity.Activity) Option {
	return func(s *Service) {
		if len(acts) > 0 {
			s.catalog = acts
		}
	}
}

// WithCapacityEnforcement rejects signups once an activity is full.
func WithCapacityEnforcement(enabled bool) Option {
	return func(s *Service) {
		s.enforceCapacity = enabled
	}
}

// WithClock overrides the time source used for confirmations.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service with a fresh registry built from the catalog.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		catalog: activity.DefaultCatalog(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	store, err := repository.NewMemoryStore(s.catalog,
		repository.WithCapacityEnforcement(s.enforceCapacity),
	)
	if err != nil {
		return nil, fmt.Errorf("build registry: %w", err)
	}
	s.store = store
	return s, nil
}

// Start marks the service ready and publishes initial gauges.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	s.store.RefreshMetrics(ctx)
	s.started = true
	s.startedAt = s.now()

	s.logger.Info(ctx, "activity registry started",
		logger.Int("activities", s.store.Count(ctx)),
		logger.Int("participants", s.store.Participants(ctx)),
		logger.Bool("enforceCapacity", s.enforceCapacity),
	)
	return nil
}

// Stop marks the service stopped. The registry stays readable; its state
// lives for the process lifetime.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "activity registry stopped")
}

// ListActivities returns every activity in catalog order.
func (s *Service) ListActivities(ctx context.Context) ([]activity.Activity, error) {
	return s.store.List(ctx), nil
}

// Enroll signs email up for the named activity.
func (s *Service) Enroll(ctx context.Context, name, email string) (model.Membership, error) {
	err := s.store.Enroll(ctx, name, email)
	metrics.RecordSignup(metricLabel(name, err), outcome(err))
	if err != nil {
		s.logger.Debug(ctx, "signup rejected",
			logger.String("activity", name),
			logger.String("email", email),
			logger.Error(err),
		)
		return model.Membership{}, err
	}

	s.logger.Info(ctx, "student signed up",
		logger.String("activity", name),
		logger.String("email", email),
	)
	return model.Membership{Activity: name, Email: email, At: s.now()}, nil
}

// Withdraw removes email from the named activity.
func (s *Service) Withdraw(ctx context.Context, name, email string) (model.Membership, error) {
	err := s.store.Withdraw(ctx, name, email)
	metrics.RecordWithdrawal(metricLabel(name, err), outcome(err))
	if err != nil {
		s.logger.Debug(ctx, "unregister rejected",
			logger.String("activity", name),
			logger.String("email", email),
			logger.Error(err),
		)
		return model.Membership{}, err
	}

	s.logger.Info(ctx, "student unregistered",
		logger.String("activity", name),
		logger.String("email", email),
	)
	return model.Membership{Activity: name, Email: email, At: s.now()}, nil
}

// RefreshMetrics republishes registry gauges. Safe to call from a scheduler.
func (s *Service) RefreshMetrics(ctx context.Context) {
	s.store.RefreshMetrics(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":         s.started,
		"activities":      s.store.Count(ctx),
		"participants":    s.store.Participants(ctx),
		"enforceCapacity": s.enforceCapacity,
	}
	if s.started {
		stats["uptimeSeconds"] = int(s.now().Sub(s.startedAt).Seconds())
	}
	return stats
}

// metricLabel keeps unknown names out of label values.
func metricLabel(name string, err error) string {
	if errors.Is(err, activity.ErrNotFound) {
		return metrics.UnknownActivity
	}
	return name
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, activity.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, activity.ErrAlreadyEnrolled):
		return metrics.OutcomeDuplicate
	case errors.Is(err, activity.ErrNotEnrolled):
		return metrics.OutcomeNotEnrolled
	case errors.Is(err, activity.ErrActivityFull):
		return metrics.OutcomeFull
	default:
		return metrics.OutcomeError
	}
}
