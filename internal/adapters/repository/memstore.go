package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/mergington/internal/domain/activity"
	"github.com/okian/mergington/pkg/metrics"
)

// entry guards one activity. Enroll/Withdraw on different activities never
// contend; the same activity is serialized by mu.
type entry struct {
	mu  sync.RWMutex
	act activity.Activity
}

// MemoryStore is a process-lifetime Store. The byName map is written only in
// NewMemoryStore, so lookups need no store-wide lock.
type MemoryStore struct {
	order           []*entry
	byName          map[string]*entry
	enforceCapacity bool
}

// NewMemoryStore builds a store from a catalog. The catalog is validated and
// deep-copied, so the caller keeps ownership of acts.
func NewMemoryStore(acts []activity.Activity, opts ...Option) (*MemoryStore, error) {
	if err := activity.ValidateCatalog(acts); err != nil {
		return nil, err
	}

	s := &MemoryStore{
		order:  make([]*entry, 0, len(acts)),
		byName: make(map[string]*entry, len(acts)),
	}
	for _, opt := range opts {
		opt(s)
	}

	for i := range acts {
		e := &entry{act: acts[i].Clone()}
		s.order = append(s.order, e)
		s.byName[e.act.Name] = e
	}

	metrics.UpdateCatalogSize(len(s.order))
	s.RefreshMetrics(context.Background())

	return s, nil
}

// List implements Store.List.
func (s *MemoryStore) List(_ context.Context) []activity.Activity {
	defer observe("list", time.Now())

	out := make([]activity.Activity, 0, len(s.order))
	for _, e := range s.order {
		e.mu.RLock()
		out = append(out, e.act.Clone())
		e.mu.RUnlock()
	}
	return out
}

// Get implements Store.Get.
func (s *MemoryStore) Get(_ context.Context, name string) (activity.Activity, error) {
	defer observe("get", time.Now())

	e, ok := s.byName[name]
	if !ok {
		return activity.Activity{}, fmt.Errorf("%q: %w", name, activity.ErrNotFound)
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.act.Clone(), nil
}

// Enroll implements Store.Enroll.
func (s *MemoryStore) Enroll(_ context.Context, name, email string) error {
	defer observe("enroll", time.Now())

	e, ok := s.byName[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, activity.ErrNotFound)
	}

	e.mu.Lock()
	err := e.act.Enroll(email, s.enforceCapacity)
	count, maxParticipants := len(e.act.Participants), e.act.MaxParticipants
	e.mu.Unlock()

	if err != nil {
		return err
	}
	metrics.UpdateParticipants(name, count, maxParticipants)
	return nil
}

// Withdraw implements Store.Withdraw.
func (s *MemoryStore) Withdraw(_ context.Context, name, email string) error {
	defer observe("withdraw", time.Now())

	e, ok := s.byName[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, activity.ErrNotFound)
	}

	e.mu.Lock()
	err := e.act.Withdraw(email)
	count, maxParticipants := len(e.act.Participants), e.act.MaxParticipants
	e.mu.Unlock()

	if err != nil {
		return err
	}
	metrics.UpdateParticipants(name, count, maxParticipants)
	return nil
}

// Count implements Store.Count.
func (s *MemoryStore) Count(_ context.Context) int {
	return len(s.order)
}

// Participants implements Store.Participants.
func (s *MemoryStore) Participants(_ context.Context) int {
	total := 0
	for _, e := range s.order {
		e.mu.RLock()
		total += len(e.act.Participants)
		e.mu.RUnlock()
	}
	return total
}

// RefreshMetrics republishes every participant gauge and the totals.
func (s *MemoryStore) RefreshMetrics(ctx context.Context) {
	s.updateMetrics()
	metrics.UpdateTotalParticipants(s.Participants(ctx))
}

func (s *MemoryStore) updateMetrics() {
	for _, e := range s.order {
		e.mu.RLock()
		name, count, maxParticipants := e.act.Name, len(e.act.Participants), e.act.MaxParticipants
		e.mu.RUnlock()
		metrics.UpdateParticipants(name, count, maxParticipants)
	}
}

func observe(op string, start time.Time) {
	metrics.RecordStoreLatency(op, float64(time.Since(start).Microseconds())/1000)
}
