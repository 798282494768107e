package lockout

import (
	"context"
	"sync"
	"time"
)

// InMemoryStore keeps lockout records in a map. It has its own mutex because
// logins consult it outside the resolver lock.
type InMemoryStore struct {
	mu      sync.Mutex
	records map[string]*Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]*Record)}
}

// Get returns a copy of the record for key, or nil.
func (s *InMemoryStore) Get(_ context.Context, key string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

// RecordFailure counts one failure at now, starting a fresh window at the
// first failure or once the previous window has elapsed, and locks the key once cfg.Attempts is reached.
// It returns a copy of the updated record.
func (s *InMemoryStore) RecordFailure(_ context.Context, key string, now time.Time, cfg Config) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[key]
	if !ok {
		rec = &Record{Key: key}
		s.records[key] = rec
	}
	if rec.windowExpired(now, cfg.Window) {
		rec.FailureCount = 0
		rec.WindowStart = now
	}
	rec.FailureCount++
	rec.LastFailureAt = now
	if rec.FailureCount >= cfg.Attempts {
		until := now.Add(cfg.LockDuration)
		rec.LockedUntil = &until
		rec.FailureCount = 0
	}
	cp := *rec
	return &cp, nil
}

func (s *InMemoryStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}

func (s *InMemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]*Record)
}
