package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"campus/internal/learner/models"
	"campus/pkg/platform/sentinel"
)

// In-memory learner store invariants: insertion order, email uniqueness
// ignoring case, and index consistency across replace and delete.
type InMemoryLearnerStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *InMemoryLearnerStoreSuite) SetupTest() {
	s.store = New()
	s.ctx = context.Background()
}

func TestInMemoryLearnerStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryLearnerStoreSuite))
}

func (s *InMemoryLearnerStoreSuite) learner(id, email string) models.Learner {
	return models.Learner{ID: id, Name: "Learner " + id, Email: email, Age: 20, FieldOfStudy: models.DefaultFieldOfStudy}
}

func (s *InMemoryLearnerStoreSuite) TestInsertAndLookup() {
	s.Require().NoError(s.store.Insert(s.ctx, s.learner("1", "a@x.com")))
	s.Require().NoError(s.store.Insert(s.ctx, s.learner("2", "b@x.com")))

	s.Run("finds by ID", func() {
		found, err := s.store.FindByID(s.ctx, "2")
		s.Require().NoError(err)
		s.Equal("b@x.com", found.Email)
	})

	s.Run("finds by email ignoring case", func() {
		found, err := s.store.FindByEmail(s.ctx, "A@X.COM")
		s.Require().NoError(err)
		s.Equal("1", found.ID)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, "99")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("rejects duplicate email ignoring case", func() {
		err := s.store.Insert(s.ctx, s.learner("3", "A@X.com"))
		s.Require().ErrorIs(err, sentinel.ErrConflict)
		s.Equal(2, s.store.Count(s.ctx))
	})

	s.Run("keeps insertion order", func() {
		all := s.store.All(s.ctx)
		s.Require().Len(all, 2)
		s.Equal("1", all[0].ID)
		s.Equal("2", all[1].ID)
	})
}

func (s *InMemoryLearnerStoreSuite) TestReplace() {
	s.Require().NoError(s.store.Insert(s.ctx, s.learner("1", "a@x.com")))
	s.Require().NoError(s.store.Insert(s.ctx, s.learner("2", "b@x.com")))

	s.Run("same email with new case is not a conflict", func() {
		l := s.learner("1", "A@X.com")
		s.Require().NoError(s.store.Replace(s.ctx, l))
	})

	s.Run("another learner's email is a conflict", func() {
		err := s.store.Replace(s.ctx, s.learner("1", "B@x.com"))
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("moves the email index", func() {
		s.Require().NoError(s.store.Replace(s.ctx, s.learner("1", "new@x.com")))
		_, err := s.store.FindByEmail(s.ctx, "a@x.com")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
		s.Require().NoError(s.store.Insert(s.ctx, s.learner("3", "a@x.com")))
	})

	s.Run("unknown ID", func() {
		err := s.store.Replace(s.ctx, s.learner("42", "z@x.com"))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryLearnerStoreSuite) TestDelete() {
	s.Require().NoError(s.store.Insert(s.ctx, s.learner("1", "a@x.com")))
	s.Require().NoError(s.store.Insert(s.ctx, s.learner("2", "b@x.com")))
	s.Require().NoError(s.store.Insert(s.ctx, s.learner("3", "c@x.com")))

	s.Require().NoError(s.store.Delete(s.ctx, "2"))

	all := s.store.All(s.ctx)
	s.Require().Len(all, 2)
	s.Equal("1", all[0].ID)
	s.Equal("3", all[1].ID)

	_, err := s.store.FindByEmail(s.ctx, "b@x.com")
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.store.Delete(s.ctx, "2"), sentinel.ErrNotFound)

	s.store.Reset()
	s.Equal(0, s.store.Count(s.ctx))
}
