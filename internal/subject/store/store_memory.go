package store

import (
	"context"
	"slices"

	"campus/internal/subject/models"
	"campus/pkg/platform/sentinel"
	"campus/pkg/platform/strings"
)

// InMemory keeps subjects in insertion order, indexed by ID and by folded
// code. It is not safe for concurrent use.
type InMemory struct {
	order  []string
	byID   map[string]models.Subject
	byCode map[string]string
}

func New() *InMemory {
	return &InMemory{
		byID:   make(map[string]models.Subject),
		byCode: make(map[string]string),
	}
}

func (s *InMemory) Insert(_ context.Context, sub models.Subject) error {
	if _, ok := s.byID[sub.ID]; ok {
		return sentinel.ErrConflict
	}
	key := strings.Fold(sub.Code)
	if _, ok := s.byCode[key]; ok {
		return sentinel.ErrConflict
	}
	s.order = append(s.order, sub.ID)
	s.byID[sub.ID] = sub
	s.byCode[key] = sub.ID
	return nil
}

// Replace overwrites an existing subject in place. A code owned by another
// subject is ErrConflict.
func (s *InMemory) Replace(_ context.Context, sub models.Subject) error {
	current, ok := s.byID[sub.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	newKey := strings.Fold(sub.Code)
	if owner, taken := s.byCode[newKey]; taken && owner != sub.ID {
		return sentinel.ErrConflict
	}
	delete(s.byCode, strings.Fold(current.Code))
	s.byCode[newKey] = sub.ID
	s.byID[sub.ID] = sub
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id string) (models.Subject, error) {
	if sub, ok := s.byID[id]; ok {
		return sub, nil
	}
	return models.Subject{}, sentinel.ErrNotFound
}

func (s *InMemory) FindByCode(_ context.Context, code string) (models.Subject, error) {
	if id, ok := s.byCode[strings.Fold(code)]; ok {
		return s.byID[id], nil
	}
	return models.Subject{}, sentinel.ErrNotFound
}

func (s *InMemory) Delete(_ context.Context, id string) error {
	sub, ok := s.byID[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.byID, id)
	delete(s.byCode, strings.Fold(sub.Code))
	s.order = slices.DeleteFunc(s.order, func(existing string) bool { return existing == id })
	return nil
}

func (s *InMemory) All(_ context.Context) []models.Subject {
	out := make([]models.Subject, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

func (s *InMemory) Count(_ context.Context) int {
	return len(s.order)
}

func (s *InMemory) Reset() {
	s.order = nil
	clear(s.byID)
	clear(s.byCode)
}
