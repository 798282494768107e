package resolver

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"campus/internal/audit"
	learnerModels "campus/internal/learner/models"
	"campus/internal/query"
	dErrors "campus/pkg/domain-errors"
)

const kindLearner = "learner"

func (r *Resolver) ListLearners(ctx context.Context, criteria *learnerModels.Criteria, opts query.Options) (_ []LearnerDetails, err error) {
	ctx, span := startSpan(ctx, "ListLearners")
	defer func() { endSpan(span, err) }()

	r.mu.RLock()
	defer r.mu.RUnlock()

	learners, err := r.learners.List(ctx, criteria, opts)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("result_count", len(learners)))
	return r.learnerDetailsList(ctx, learners), nil
}

func (r *Resolver) GetLearner(ctx context.Context, id string) (_ *LearnerDetails, err error) {
	ctx, span := startSpan(ctx, "GetLearner", attribute.String("learner_id", id))
	defer func() { endSpan(span, err) }()

	r.mu.RLock()
	defer r.mu.RUnlock()

	l, err := r.learners.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	details := r.learnerDetails(ctx, *l)
	return &details, nil
}

// FindLearnersByField returns learners whose field of study contains the
// given text, ignoring case.
func (r *Resolver) FindLearnersByField(ctx context.Context, field string) []LearnerDetails {
	ctx, span := startSpan(ctx, "FindLearnersByField")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.learnerDetailsList(ctx, r.learners.FindByFieldOfStudy(ctx, field))
}

func (r *Resolver) CreateLearner(ctx context.Context, req learnerModels.CreateRequest) (_ *LearnerDetails, err error) {
	ctx, span := startSpan(ctx, "CreateLearner")
	defer func() { endSpan(span, err) }()

	actor, err := r.requireUser(ctx, "CreateLearner")
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	l, err := r.learners.Create(ctx, req)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	details := r.learnerDetails(ctx, *l)
	r.mu.Unlock()

	r.emit(ctx, audit.Event{ActorID: actor, Action: audit.ActionLearnerCreated, EntityKind: kindLearner, EntityID: l.ID})
	return &details, nil
}

func (r *Resolver) UpdateLearner(ctx context.Context, id string, req learnerModels.UpdateRequest) (_ *LearnerDetails, err error) {
	ctx, span := startSpan(ctx, "UpdateLearner", attribute.String("learner_id", id))
	defer func() { endSpan(span, err) }()

	actor, err := r.requireUser(ctx, "UpdateLearner")
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	l, err := r.learners.Update(ctx, id, req)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	details := r.learnerDetails(ctx, *l)
	r.mu.Unlock()

	r.emit(ctx, audit.Event{ActorID: actor, Action: audit.ActionLearnerUpdated, EntityKind: kindLearner, EntityID: id})
	return &details, nil
}

// DeleteLearner removes the learner and every enrollment edge it has.
func (r *Resolver) DeleteLearner(ctx context.Context, id string) (err error) {
	ctx, span := startSpan(ctx, "DeleteLearner", attribute.String("learner_id", id))
	defer func() { endSpan(span, err) }()

	actor, err := r.requireUser(ctx, "DeleteLearner")
	if err != nil {
		return err
	}

	r.mu.Lock()
	deleted, err := r.learners.Delete(ctx, id)
	r.mu.Unlock()
	if err != nil {
		return err
	}
	if !deleted {
		return dErrors.New(dErrors.CodeNotFound, "learner not found")
	}

	r.emit(ctx, audit.Event{ActorID: actor, Action: audit.ActionLearnerDeleted, EntityKind: kindLearner, EntityID: id})
	return nil
}
