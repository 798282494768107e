package service

import (
	"context"
	"errors"
	"log/slog"

	"campus/internal/ids"
	"campus/internal/learner/models"
	"campus/internal/platform/metrics"
	"campus/internal/query"
	dErrors "campus/pkg/domain-errors"
	"campus/pkg/platform/sentinel"
)

type Store interface {
	Insert(ctx context.Context, l models.Learner) error
	Replace(ctx context.Context, l models.Learner) error
	FindByID(ctx context.Context, id string) (models.Learner, error)
	FindByEmail(ctx context.Context, email string) (models.Learner, error)
	Delete(ctx context.Context, id string) error
	All(ctx context.Context) []models.Learner
	Count(ctx context.Context) int
	Reset()
}

// Links is the part of the relationship store the learner repository
// maintains: every learner gets an entry on creation and loses it on delete.
type Links interface {
	Init(learnerID string)
	DropLearner(learnerID string)
}

// Repository owns the learner collection. It validates input, enforces email
// uniqueness, allocates identifiers, and cascades deletes into the
// relationship store.
//
// Repository holds no lock of its own. Callers serialize access.
type Repository struct {
	learners Store
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

// New constructs a Repository. The allocator is seeded so the next learner ID
// follows the current collection size.
func New(learners Store, links Links, allocator *ids.Allocator, opts ...Option) *Repository {
	r := &Repository{learners: learners, links: links, ids: allocator}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	allocator.Seed(ids.KindLearner, learners.Count(context.Background()))
	return r
}

// List runs the query pipeline over all learners.
func (r *Repository) List(ctx context.Context, criteria *models.Criteria, opts query.Options) ([]models.Learner, error) {
	return query.Apply(r.learners.All(ctx), criteria.Matches, models.SortFields, opts)
}

// All returns every learner in collection order.
func (r *Repository) All(ctx context.Context) []models.Learner {
	return r.learners.All(ctx)
}

// FindByFieldOfStudy returns learners whose field of study contains the given
// text, ignoring case.
func (r *Repository) FindByFieldOfStudy(ctx context.Context, fieldSubstring string) []models.Learner {
	criteria := &models.Criteria{FieldOfStudyContains: &fieldSubstring}
	return query.Filter(r.learners.All(ctx), criteria.Matches)
}

func (r *Repository) Get(ctx context.Context, id string) (*models.Learner, error) {
	l, err := r.learners.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "learner not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load learner")
	}
	return &l, nil
}

// Exists reports whether a learner with the given ID is present.
func (r *Repository) Exists(ctx context.Context, id string) bool {
	_, err := r.learners.FindByID(ctx, id)
	return err == nil
}

// Create validates and stores a new learner. Nothing is written when
// validation or the uniqueness check fails.
func (r *Repository) Create(ctx context.Context, req models.CreateRequest) (*models.Learner, error) {
	l, err := models.NewLearner("", req)
	if err != nil {
		return nil, err
	}
	if _, err := r.learners.FindByEmail(ctx, l.Email); err == nil {
		return nil, dErrors.New(dErrors.CodeConflict, "email already registered to a learner")
	}

	l.ID = r.ids.Next(ids.KindLearner)
	if err := r.learners.Insert(ctx, *l); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "email already registered to a learner")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create learner")
	}
	r.links.Init(l.ID)

	r.logger.InfoContext(ctx, "learner created", "learner_id", l.ID)
	if r.metrics != nil {
		r.metrics.IncrementLearnersCreated()
	}
	return l, nil
}

// Update applies the supplied fields of req. Only supplied fields are
// validated; the email uniqueness check ignores the learner itself.
func (r *Repository) Update(ctx context.Context, id string, req models.UpdateRequest) (*models.Learner, error) {
	current, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Email != nil {
		if owner, err := r.learners.FindByEmail(ctx, *req.Email); err == nil && owner.ID != id {
			return nil, dErrors.New(dErrors.CodeConflict, "email already registered to a learner")
		}
	}

	updated := req.ApplyTo(*current)
	if err := r.learners.Replace(ctx, updated); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrConflict):
			return nil, dErrors.New(dErrors.CodeConflict, "email already registered to a learner")
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "learner not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update learner")
	}
	return &updated, nil
}

// Delete removes a learner and all of its enrollment edges. It reports false
// when no learner had the ID.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	if err := r.learners.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete learner")
	}
	r.links.DropLearner(id)
	r.logger.InfoContext(ctx, "learner deleted", "learner_id", id)
	return true, nil
}

// Reset empties the collection.
func (r *Repository) Reset() {
	r.learners.Reset()
}
