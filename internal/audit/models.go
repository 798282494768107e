package audit

import (
	"context"
	"time"
)

// Action names a mutation recorded in the audit trail.
type Action string

const (
	ActionCredentialRegistered Action = "credential_registered"
	ActionLearnerCreated       Action = "learner_created"
	ActionLearnerUpdated       Action = "learner_updated"
	ActionLearnerDeleted       Action = "learner_deleted"
	ActionSubjectCreated       Action = "subject_created"
	ActionSubjectUpdated       Action = "subject_updated"
	ActionSubjectDeleted       Action = "subject_deleted"
	ActionEnrollmentLinked     Action = "enrollment_linked"
	ActionEnrollmentUnlinked   Action = "enrollment_unlinked"
)

// Event is emitted after a successful mutation. ActorID is the credential
// that performed it; EntityID identifies what changed. For enrollment events
// EntityID is the learner and RelatedID the subject.
type Event struct {
	Timestamp  time.Time
	ActorID    string
	Action     Action
	EntityKind string
	EntityID   string
	RelatedID  string
	RequestID  string
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}
