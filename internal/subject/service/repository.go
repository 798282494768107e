package service

import (
	"context"
	"errors"
	"log/slog"

	"campus/internal/ids"
	"campus/internal/platform/metrics"
	"campus/internal/query"
	"campus/internal/subject/models"
	dErrors "campus/pkg/domain-errors"
	"campus/pkg/platform/sentinel"
)

const codeConflict = "subject code already exists"

type Store interface {
	Insert(ctx context.Context, s models.Subject) error
	Replace(ctx context.Context, s models.Subject) error
	FindByID(ctx context.Context, id string) (models.Subject, error)
	FindByCode(ctx context.Context, code string) (models.Subject, error)
	Delete(ctx context.Context, id string) error
	All(ctx context.Context) []models.Subject
	Count(ctx context.Context) int
	Reset()
}

// Links removes a deleted subject from every learner's enrollment set.
type Links interface {
	DropSubject(subjectID string)
}

// Repository owns the subject collection. Callers serialize access.
type Repository struct {
	subjects Store
	links    Links
	ids      *ids.Allocator
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(r *Repository)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		r.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Repository) {
		r.metrics = m
	}
}

func New(subjects Store, links Links, allocator *ids.Allocator, opts ...Option) *Repository {
	r := &Repository{subjects: subjects, links: links, ids: allocator}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	allocator.Seed(ids.KindSubject, subjects.Count(context.Background()))
	return r
}

func (r *Repository) List(ctx context.Context, criteria *models.Criteria, opts query.Options) ([]models.Subject, error) {
	return query.Apply(r.subjects.All(ctx), criteria.Matches, models.SortFields, opts)
}

func (r *Repository) All(ctx context.Context) []models.Subject {
	return r.subjects.All(ctx)
}

func (r *Repository) Get(ctx context.Context, id string) (*models.Subject, error) {
	s, err := r.subjects.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "subject not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load subject")
	}
	return &s, nil
}

func (r *Repository) Exists(ctx context.Context, id string) bool {
	_, err := r.subjects.FindByID(ctx, id)
	return err == nil
}

func (r *Repository) Create(ctx context.Context, req models.CreateRequest) (*models.Subject, error) {
	s, err := models.NewSubject("", req)
	if err != nil {
		return nil, err
	}
	if _, err := r.subjects.FindByCode(ctx, s.Code); err == nil {
		return nil, dErrors.New(dErrors.CodeConflict, codeConflict)
	}

	s.ID = r.ids.Next(ids.KindSubject)
	if err := r.subjects.Insert(ctx, *s); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, codeConflict)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create subject")
	}

	r.logger.InfoContext(ctx, "subject created", "subject_id", s.ID, "code", s.Code)
	if r.metrics != nil {
		r.metrics.IncrementSubjectsCreated()
	}
	return s, nil
}

// Update applies the supplied fields. The code uniqueness check ignores the
// subject itself.
func (r *Repository) Update(ctx context.Context, id string, req models.UpdateRequest) (*models.Subject, error) {
	current, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Code != nil {
		if owner, err := r.subjects.FindByCode(ctx, *req.Code); err == nil && owner.ID != id {
			return nil, dErrors.New(dErrors.CodeConflict, codeConflict)
		}
	}

	updated := req.ApplyTo(*current)
	if err := r.subjects.Replace(ctx, updated); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrConflict):
			return nil, dErrors.New(dErrors.CodeConflict, codeConflict)
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "subject not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update subject")
	}
	return &updated, nil
}

// Delete removes a subject and detaches it from every learner. It reports
// false when no subject had the ID.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	if err := r.subjects.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete subject")
	}
	r.links.DropSubject(id)
	r.logger.InfoContext(ctx, "subject deleted", "subject_id", id)
	return true, nil
}

func (r *Repository) Reset() {
	r.subjects.Reset()
}
