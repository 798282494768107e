package store

import (
	"context"

	"campus/internal/auth/models"
	"campus/pkg/platform/sentinel"
	"campus/pkg/platform/strings"
)

// InMemoryUserStore keeps credentials indexed by ID and folded email. It is
// not safe for concurrent use; the resolver serializes access.
type InMemoryUserStore struct {
	byID    map[string]models.User
	byEmail map[string]string
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		byID:    make(map[string]models.User),
		byEmail: make(map[string]string),
	}
}

// CreateIfEmailAvailable inserts the user unless the email is taken,
// ignoring case, in which case it returns ErrConflict.
func (s *InMemoryUserStore) CreateIfEmailAvailable(_ context.Context, user models.User) error {
	key := strings.Fold(user.Email)
	if _, taken := s.byEmail[key]; taken {
		return sentinel.ErrConflict
	}
	if _, taken := s.byID[user.ID]; taken {
		return sentinel.ErrConflict
	}
	s.byID[user.ID] = user
	s.byEmail[key] = user.ID
	return nil
}

func (s *InMemoryUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	if user, ok := s.byID[id]; ok {
		return &user, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if id, ok := s.byEmail[strings.Fold(email)]; ok {
		user := s.byID[id]
		return &user, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryUserStore) Count(_ context.Context) int {
	return len(s.byID)
}

func (s *InMemoryUserStore) Reset() {
	clear(s.byID)
	clear(s.byEmail)
}
