package resolver

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"campus/internal/audit"
	dErrors "campus/pkg/domain-errors"
)

// LinkLearnerSubject registers a learner for a subject. Linking an existing
// pair succeeds without change.
func (r *Resolver) LinkLearnerSubject(ctx context.Context, learnerID, subjectID string) (*LearnerDetails, error) {
	return r.changeEnrollment(ctx, "LinkLearnerSubject", learnerID, subjectID, true)
}

// UnlinkLearnerSubject removes a registration. Unlinking a pair that is not
// linked succeeds without change.
func (r *Resolver) UnlinkLearnerSubject(ctx context.Context, learnerID, subjectID string) (*LearnerDetails, error) {
	return r.changeEnrollment(ctx, "UnlinkLearnerSubject", learnerID, subjectID, false)
}

func (r *Resolver) changeEnrollment(ctx context.Context, op, learnerID, subjectID string, link bool) (_ *LearnerDetails, err error) {
	ctx, span := startSpan(ctx, op,
		attribute.String("learner_id", learnerID),
		attribute.String("subject_id", subjectID),
	)
	defer func() { endSpan(span, err) }()

	actor, err := r.requireUser(ctx, op)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	l, err := r.learners.Get(ctx, learnerID)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	if !r.subjects.Exists(ctx, subjectID) {
		r.mu.Unlock()
		return nil, dErrors.New(dErrors.CodeNotFound, "subject not found")
	}

	linked := r.links.SubjectsOf(learnerID).Has(subjectID)
	changed := linked != link
	if link {
		r.links.Link(learnerID, subjectID)
	} else {
		r.links.Unlink(learnerID, subjectID)
	}
	details := r.learnerDetails(ctx, *l)
	r.mu.Unlock()

	span.SetAttributes(attribute.Bool("changed", changed))
	if !changed {
		return &details, nil
	}

	action := audit.ActionEnrollmentUnlinked
	if link {
		action = audit.ActionEnrollmentLinked
		if r.metrics != nil {
			r.metrics.IncrementEnrollmentLinks()
		}
	}
	r.emit(ctx, audit.Event{ActorID: actor, Action: action, EntityKind: kindLearner, EntityID: learnerID, RelatedID: subjectID})
	return &details, nil
}
