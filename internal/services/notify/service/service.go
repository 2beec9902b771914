// Package service keeps the in-process notification feed
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"quando/internal/services/notify/domain"
)

// DefaultCapacity bounds the feed; the oldest entry is evicted when full
const DefaultCapacity = 100

// Service defines the service contract for notifications
type Service interface{ domain.ServicePort }

// Svc is a bounded in-memory ring of notifications, newest first on read.
// The feed is process local and owned by the service instance
type Svc struct {
	mu    sync.Mutex
	items []domain.Notification
	cap   int
	clock func() time.Time
}

// New creates a feed with the given capacity; zero or negative means DefaultCapacity
func New(capacity int) *Svc {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Svc{cap: capacity, clock: time.Now}
}

// WithClock overrides the wall clock, test hook only
func (s *Svc) WithClock(fn func() time.Time) *Svc { s.clock = fn; return s }

// Publish appends an entry, evicting the oldest when the feed is full
func (s *Svc) Publish(_ context.Context, typ domain.Type, message, taskID string) domain.Notification {
	n := domain.Notification{
		ID:        uuid.NewString(),
		Type:      typ,
		Message:   message,
		TaskID:    taskID,
		CreatedAt: s.clock().UTC(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, n)
	if len(s.items) > s.cap {
		s.items = s.items[len(s.items)-s.cap:]
	}
	return n
}

// List returns entries newest first
func (s *Svc) List(_ context.Context, in domain.ListInput) ([]domain.Notification, error) {
	limit := in.Limit
	if limit <= 0 || limit > DefaultCapacity {
		limit = DefaultCapacity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Notification, 0, limit)
	for i := len(s.items) - 1; i >= 0 && len(out) < limit; i-- {
		if in.UnreadOnly && s.items[i].Read {
			continue
		}
		out = append(out, s.items[i])
	}
	return out, nil
}

// MarkRead flags the selected entries; empty selection means everything
func (s *Svc) MarkRead(_ context.Context, in domain.MarkReadInput) (domain.MarkReadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var marked int
	if len(in.IDs) == 0 {
		for i := range s.items {
			if !s.items[i].Read {
				s.items[i].Read = true
				marked++
			}
		}
		return domain.MarkReadResult{Marked: marked}, nil
	}
	want := make(map[string]struct{}, len(in.IDs))
	for _, id := range in.IDs {
		want[id] = struct{}{}
	}
	for i := range s.items {
		if _, ok := want[s.items[i].ID]; ok && !s.items[i].Read {
			s.items[i].Read = true
			marked++
		}
	}
	return domain.MarkReadResult{Marked: marked}, nil
}

// Clear empties the feed
func (s *Svc) Clear(_ context.Context) (domain.ClearResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.items)
	s.items = nil
	return domain.ClearResult{Cleared: n}, nil
}
