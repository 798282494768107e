package store

import (
	"context"

	"campus/internal/learner/models"
	"campus/pkg/platform/sentinel"
	"campus/pkg/platform/strings"
)

// InMemory keeps learners in insertion order with a primary index by ID and a
// secondary index by folded email.
//
// InMemory is not safe for concurrent use; the resolver serializes access.
type InMemory struct {
	order   []string
	byID    map[string]models.Learner
	byEmail map[string]string
}

func New() *InMemory {
	return &InMemory{
		byID:    make(map[string]models.Learner),
		byEmail: make(map[string]string),
	}
}

// Insert appends a learner. It returns ErrConflict when the ID or the folded
// email is already present.
func (s *InMemory) Insert(_ context.Context, l models.Learner) error {
	if _, ok := s.byID[l.ID]; ok {
		return sentinel.ErrConflict
	}
	key := strings.Fold(l.Email)
	if _, ok := s.byEmail[key]; ok {
		return sentinel.ErrConflict
	}
	s.order = append(s.order, l.ID)
	s.byID[l.ID] = l
	s.byEmail[key] = l.ID
	return nil
}

// Replace overwrites an existing learner, keeping its position. It returns
// ErrNotFound for an unknown ID and ErrConflict when the new email belongs to
// a different learner.
func (s *InMemory) Replace(_ context.Context, l models.Learner) error {
	current, ok := s.byID[l.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	newKey := strings.Fold(l.Email)
	if owner, taken := s.byEmail[newKey]; taken && owner != l.ID {
		return sentinel.ErrConflict
	}
	delete(s.byEmail, strings.Fold(current.Email))
	s.byEmail[newKey] = l.ID
	s.byID[l.ID] = l
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id string) (models.Learner, error) {
	if l, ok := s.byID[id]; ok {
		return l, nil
	}
	return models.Learner{}, sentinel.ErrNotFound
}

// FindByEmail looks a learner up ignoring case.
func (s *InMemory) FindByEmail(_ context.Context, email string) (models.Learner, error) {
	if id, ok := s.byEmail[strings.Fold(email)]; ok {
		return s.byID[id], nil
	}
	return models.Learner{}, sentinel.ErrNotFound
}

// Delete removes a learner. It returns ErrNotFound for an unknown ID.
func (s *InMemory) Delete(_ context.Context, id string) error {
	l, ok := s.byID[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.byID, id)
	delete(s.byEmail, strings.Fold(l.Email))
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// All returns every learner in insertion order.
func (s *InMemory) All(_ context.Context) []models.Learner {
	out := make([]models.Learner, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

func (s *InMemory) Count(_ context.Context) int {
	return len(s.order)
}

// Reset removes every learner.
func (s *InMemory) Reset() {
	s.order = nil
	clear(s.byID)
	clear(s.byEmail)
}
