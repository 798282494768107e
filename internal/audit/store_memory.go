package audit

import (
	"context"
	"sync"
)

// DefaultRetention is how many events the in-memory log keeps when no limit
// is given.
const DefaultRetention = 10000

// InMemoryStore is a bounded event log that keeps the most recent events.
// The worker writes from its own goroutine, so the store locks independently
// of the resolver.
type InMemoryStore struct {
	mu     sync.RWMutex
	limit  int
	events []Event
}

// NewInMemoryStore keeps at most limit events; limit <= 0 means
// DefaultRetention.
func NewInMemoryStore(limit int) *InMemoryStore {
	if limit <= 0 {
		limit = DefaultRetention
	}
	return &InMemoryStore{limit: limit}
}

// Append records the event, evicting the oldest once the limit is reached.
func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) >= s.limit {
		n := copy(s.events, s.events[len(s.events)-s.limit+1:])
		s.events = s.events[:n]
	}
	s.events = append(s.events, event)
	return nil
}

// ListAll returns every event in append order.
func (s *InMemoryStore) ListAll(_ context.Context) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events...)
}

// ListByActor returns the events performed by one credential.
func (s *InMemoryStore) ListByActor(_ context.Context, actorID string) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.ActorID == actorID {
			out = append(out, e)
		}
	}
	return out
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}
