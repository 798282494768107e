package resolver

import (
	"context"

	learnerModels "campus/internal/learner/models"
	subjectModels "campus/internal/subject/models"
)

// LearnerDetails is a learner with its enrolled subjects resolved, in subject
// collection order.
type LearnerDetails struct {
	learnerModels.Learner
	EnrolledSubjectCount int                     `json:"enrolled_subject_count"`
	EnrolledSubjects     []subjectModels.Subject `json:"enrolled_subjects"`
}

// SubjectDetails is a subject with its registered learners resolved, in
// learner collection order.
type SubjectDetails struct {
	subjectModels.Subject
	RegisteredLearnerCount int                     `json:"registered_learner_count"`
	RegisteredLearners     []learnerModels.Learner `json:"registered_learners"`
}

// learnerDetails must be called with the lock held.
func (r *Resolver) learnerDetails(ctx context.Context, l learnerModels.Learner) LearnerDetails {
	enrolled := r.links.SubjectsOf(l.ID)
	subjects := make([]subjectModels.Subject, 0, enrolled.Len())
	if enrolled.Len() > 0 {
		for _, s := range r.subjects.All(ctx) {
			if enrolled.Has(s.ID) {
				subjects = append(subjects, s)
			}
		}
	}
	return LearnerDetails{
		Learner:              l,
		EnrolledSubjectCount: len(subjects),
		EnrolledSubjects:     subjects,
	}
}

// subjectDetails must be called with the lock held.
func (r *Resolver) subjectDetails(ctx context.Context, s subjectModels.Subject) SubjectDetails {
	registered := r.links.LearnersOf(s.ID)
	learners := make([]learnerModels.Learner, 0, registered.Len())
	if registered.Len() > 0 {
		for _, l := range r.learners.All(ctx) {
			if registered.Has(l.ID) {
				learners = append(learners, l)
			}
		}
	}
	return SubjectDetails{
		Subject:                s,
		RegisteredLearnerCount: len(learners),
		RegisteredLearners:     learners,
	}
}

func (r *Resolver) learnerDetailsList(ctx context.Context, learners []learnerModels.Learner) []LearnerDetails {
	out := make([]LearnerDetails, 0, len(learners))
	for _, l := range learners {
		out = append(out, r.learnerDetails(ctx, l))
	}
	return out
}

func (r *Resolver) subjectDetailsList(ctx context.Context, subjects []subjectModels.Subject) []SubjectDetails {
	out := make([]SubjectDetails, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, r.subjectDetails(ctx, s))
	}
	return out
}
