package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"campus/internal/enrollment"
	"campus/internal/ids"
	"campus/internal/learner/models"
	"campus/internal/learner/store"
	"campus/internal/query"
	dErrors "campus/pkg/domain-errors"
)

type RepositorySuite struct {
	suite.Suite
	ctx   context.Context
	store *store.InMemory
	links *enrollment.Store
	ids   *ids.Allocator
	repo  *Repository
}

func (s *RepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.store = store.New()
	s.links = enrollment.NewStore()
	s.ids = ids.NewAllocator()
	s.repo = New(s.store, s.links, s.ids, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func ptr[T any](v T) *T { return &v }

func (s *RepositorySuite) create(name, email string, age int) *models.Learner {
	l, err := s.repo.Create(s.ctx, models.CreateRequest{Name: name, Email: email, Age: age})
	s.Require().NoError(err)
	return l
}

func (s *RepositorySuite) TestCreate() {
	s.Run("allocates sequential IDs and an empty enrollment entry", func() {
		first := s.create("Salma Youssef", "salma.y@example.com", 23)
		second := s.create("Karim Adel", "karim.a@example.com", 22)

		s.Equal("1", first.ID)
		s.Equal("2", second.ID)
		s.True(s.links.HasEntry(first.ID))
		s.Equal(0, s.links.SubjectsOf(first.ID).Len())
	})

	s.Run("duplicate email differing in case conflicts", func() {
		_, err := s.repo.Create(s.ctx, models.CreateRequest{Name: "Someone", Email: "SALMA.Y@EXAMPLE.COM", Age: 21})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Len(s.repo.All(s.ctx), 2)
	})

	s.Run("validation failure writes nothing and burns no ID", func() {
		_, err := s.repo.Create(s.ctx, models.CreateRequest{Name: "Young", Email: "young@example.com", Age: 17})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Len(s.repo.All(s.ctx), 2)

		third := s.create("Laila Ibrahim", "laila.i@example.com", 24)
		s.Equal("3", third.ID)
	})
}

func (s *RepositorySuite) TestAllocatorSeedsFromExistingCollection() {
	st := store.New()
	for _, id := range []string{"1", "2", "3", "4"} {
		s.Require().NoError(st.Insert(s.ctx, models.Learner{ID: id, Name: "L" + id, Email: "l" + id + "@x.com", Age: 20}))
	}
	repo := New(st, enrollment.NewStore(), ids.NewAllocator())

	l, err := repo.Create(s.ctx, models.CreateRequest{Name: "New", Email: "new@x.com", Age: 30})
	s.Require().NoError(err)
	s.Equal("5", l.ID)
}

func (s *RepositorySuite) TestIDsAreNotReused() {
	s.create("A", "a@x.com", 20)
	b := s.create("B", "b@x.com", 20)

	deleted, err := s.repo.Delete(s.ctx, b.ID)
	s.Require().NoError(err)
	s.True(deleted)

	c := s.create("C", "c@x.com", 20)
	s.Equal("3", c.ID)
}

func (s *RepositorySuite) TestUpdate() {
	l := s.create("Omar Sherif", "omar.s@example.com", 21)
	s.create("Karim Adel", "karim.a@example.com", 22)

	s.Run("applies only supplied fields", func() {
		got, err := s.repo.Update(s.ctx, l.ID, models.UpdateRequest{FieldOfStudy: ptr("Artificial Intelligence")})
		s.Require().NoError(err)
		s.Equal("Artificial Intelligence", got.FieldOfStudy)
		s.Equal(21, got.Age)
		s.Equal("Omar Sherif", got.Name)
	})

	s.Run("own email in different case is not a conflict", func() {
		got, err := s.repo.Update(s.ctx, l.ID, models.UpdateRequest{Email: ptr("OMAR.S@example.com")})
		s.Require().NoError(err)
		s.Equal("OMAR.S@example.com", got.Email)
	})

	s.Run("another learner's email conflicts and changes nothing", func() {
		_, err := s.repo.Update(s.ctx, l.ID, models.UpdateRequest{Email: ptr("karim.a@EXAMPLE.com"), Age: ptr(40)})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))

		got, err := s.repo.Get(s.ctx, l.ID)
		s.Require().NoError(err)
		s.Equal(21, got.Age)
	})

	s.Run("out of range age is a validation error", func() {
		_, err := s.repo.Update(s.ctx, l.ID, models.UpdateRequest{Age: ptr(16)})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown ID is not found", func() {
		_, err := s.repo.Update(s.ctx, "99", models.UpdateRequest{Age: ptr(30)})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *RepositorySuite) TestDeleteCascades() {
	l := s.create("Laila Ibrahim", "laila.i@example.com", 24)
	s.links.Link(l.ID, "101")
	s.links.Link(l.ID, "102")

	deleted, err := s.repo.Delete(s.ctx, l.ID)
	s.Require().NoError(err)
	s.True(deleted)
	s.Equal(0, s.links.SubjectsOf(l.ID).Len())
	s.False(s.links.LearnersOf("101").Has(l.ID))

	deleted, err = s.repo.Delete(s.ctx, l.ID)
	s.Require().NoError(err)
	s.False(deleted)
}

func (s *RepositorySuite) TestList() {
	s.create("Salma Youssef", "salma.y@example.com", 23)
	s.create("Karim Adel", "karim.a@example.com", 22)
	s.create("Laila Ibrahim", "laila.i@example.com", 24)
	s.create("Omar Sherif", "omar.s@example.com", 21)
	s.create("Nour Hassan", "nour.h@example.com", 26)

	s.Run("paginates the unfiltered collection", func() {
		got, err := s.repo.List(s.ctx, nil, query.Options{Page: &query.Page{Size: 2, Number: 1}})
		s.Require().NoError(err)
		s.Require().Len(got, 2)
		s.Equal("3", got[0].ID)
		s.Equal("4", got[1].ID)
	})

	s.Run("filters then sorts", func() {
		got, err := s.repo.List(s.ctx,
			&models.Criteria{MinAge: ptr(22), MaxAge: ptr(24)},
			query.Options{Sort: &query.Sort{Field: "age", Direction: query.ParseDirection("desc")}},
		)
		s.Require().NoError(err)
		s.Require().Len(got, 3)
		s.Equal([]int{24, 23, 22}, []int{got[0].Age, got[1].Age, got[2].Age})
	})

	s.Run("unknown sort field is rejected", func() {
		_, err := s.repo.List(s.ctx, nil, query.Options{Sort: &query.Sort{Field: "password"}})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("finds by field of study substring", func() {
		_, err := s.repo.Update(s.ctx, "2", models.UpdateRequest{FieldOfStudy: ptr("Cybersecurity")})
		s.Require().NoError(err)
		got := s.repo.FindByFieldOfStudy(s.ctx, "SECUR")
		s.Require().Len(got, 1)
		s.Equal("2", got[0].ID)
	})
}
