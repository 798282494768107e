// Package seed loads the demonstration dataset into empty stores.
package seed

import (
	"context"
	"fmt"

	learnerModels "campus/internal/learner/models"
	subjectModels "campus/internal/subject/models"
)

type LearnerStore interface {
	Insert(ctx context.Context, l learnerModels.Learner) error
}

type SubjectStore interface {
	Insert(ctx context.Context, s subjectModels.Subject) error
}

type Links interface {
	Init(learnerID string)
	Link(learnerID, subjectID string)
}

var Learners = []learnerModels.Learner{
	{ID: "1", Name: "Salma Youssef", Email: "salma.y@example.com", Age: 23, FieldOfStudy: "Software Engineering"},
	{ID: "2", Name: "Karim Adel", Email: "karim.a@example.com", Age: 22, FieldOfStudy: "Cybersecurity"},
	{ID: "3", Name: "Laila Ibrahim", Email: "laila.i@example.com", Age: 24, FieldOfStudy: "Software Engineering"},
	{ID: "4", Name: "Omar Sherif", Email: "omar.s@example.com", Age: 21, FieldOfStudy: "Artificial Intelligence"},
}

var Subjects = []subjectModels.Subject{
	{ID: "1", Name: "Web Development Fundamentals", Code: "WD101", CreditHours: 4, Educator: "Prof. Nadia"},
	{ID: "2", Name: "Introduction to AI", Code: "AI202", CreditHours: 3, Educator: "Prof. Khaled"},
	{ID: "3", Name: "Network Security", Code: "CS405", CreditHours: 4, Educator: "Prof. Mona"},
	{ID: "4", Name: "Mobile App Development", Code: "SE310", CreditHours: 3, Educator: "Prof. Hany"},
}

// Enrollments maps learner IDs to the subject IDs they are registered for.
var Enrollments = map[string][]string{
	"1": {"1", "4"},
	"2": {"3"},
	"3": {"1", "2"},
	"4": {"2"},
}

// Load inserts the dataset. It must run before the repositories are built so
// their allocators continue after the seeded IDs.
func Load(ctx context.Context, learners LearnerStore, subjects SubjectStore, links Links) error {
	for _, l := range Learners {
		if err := learners.Insert(ctx, l); err != nil {
			return fmt.Errorf("seed learner %s: %w", l.ID, err)
		}
		links.Init(l.ID)
	}
	for _, s := range Subjects {
		if err := subjects.Insert(ctx, s); err != nil {
			return fmt.Errorf("seed subject %s: %w", s.ID, err)
		}
	}
	for learnerID, subjectIDs := range Enrollments {
		for _, subjectID := range subjectIDs {
			links.Link(learnerID, subjectID)
		}
	}
	return nil
}
