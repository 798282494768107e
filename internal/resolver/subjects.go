package resolver

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"campus/internal/audit"
	"campus/internal/query"
	subjectModels "campus/internal/subject/models"
	dErrors "campus/pkg/domain-errors"
)

const kindSubject = "subject"

func (r *Resolver) ListSubjects(ctx context.Context, criteria *subjectModels.Criteria, opts query.Options) (_ []SubjectDetails, err error) {
	ctx, span := startSpan(ctx, "ListSubjects")
	defer func() { endSpan(span, err) }()

	r.mu.RLock()
	defer r.mu.RUnlock()

	subjects, err := r.subjects.List(ctx, criteria, opts)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("result_count", len(subjects)))
	return r.subjectDetailsList(ctx, subjects), nil
}

func (r *Resolver) GetSubject(ctx context.Context, id string) (_ *SubjectDetails, err error) {
	ctx, span := startSpan(ctx, "GetSubject", attribute.String("subject_id", id))
	defer func() { endSpan(span, err) }()

	r.mu.RLock()
	defer r.mu.RUnlock()

	s, err := r.subjects.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	details := r.subjectDetails(ctx, *s)
	return &details, nil
}

func (r *Resolver) CreateSubject(ctx context.Context, req subjectModels.CreateRequest) (_ *SubjectDetails, err error) {
	ctx, span := startSpan(ctx, "CreateSubject")
	defer func() { endSpan(span, err) }()

	actor, err := r.requireUser(ctx, "CreateSubject")
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	s, err := r.subjects.Create(ctx, req)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	details := r.subjectDetails(ctx, *s)
	r.mu.Unlock()

	r.emit(ctx, audit.Event{ActorID: actor, Action: audit.ActionSubjectCreated, EntityKind: kindSubject, EntityID: s.ID})
	return &details, nil
}

func (r *Resolver) UpdateSubject(ctx context.Context, id string, req subjectModels.UpdateRequest) (_ *SubjectDetails, err error) {
	ctx, span := startSpan(ctx, "UpdateSubject", attribute.String("subject_id", id))
	defer func() { endSpan(span, err) }()

	actor, err := r.requireUser(ctx, "UpdateSubject")
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	s, err := r.subjects.Update(ctx, id, req)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	details := r.subjectDetails(ctx, *s)
	r.mu.Unlock()

	r.emit(ctx, audit.Event{ActorID: actor, Action: audit.ActionSubjectUpdated, EntityKind: kindSubject, EntityID: id})
	return &details, nil
}

// DeleteSubject removes the subject and detaches it from every learner.
func (r *Resolver) DeleteSubject(ctx context.Context, id string) (err error) {
	ctx, span := startSpan(ctx, "DeleteSubject", attribute.String("subject_id", id))
	defer func() { endSpan(span, err) }()

	actor, err := r.requireUser(ctx, "DeleteSubject")
	if err != nil {
		return err
	}

	r.mu.Lock()
	deleted, err := r.subjects.Delete(ctx, id)
	r.mu.Unlock()
	if err != nil {
		return err
	}
	if !deleted {
		return dErrors.New(dErrors.CodeNotFound, "subject not found")
	}

	r.emit(ctx, audit.Event{ActorID: actor, Action: audit.ActionSubjectDeleted, EntityKind: kindSubject, EntityID: id})
	return nil
}
