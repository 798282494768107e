package models

import (
	"strconv"

	"campus/internal/query"
	"campus/pkg/platform/strings"
)

// Criteria filters learners. Nil fields impose no constraint; set fields
// combine with AND. String matches ignore case.
type Criteria struct {
	NameContains         *string
	EmailContains        *string
	FieldOfStudy         *string
	FieldOfStudyContains *string
	MinAge               *int
	MaxAge               *int
}

// Matches reports whether l satisfies every set predicate.
func (c *Criteria) Matches(l Learner) bool {
	if c == nil {
		return true
	}
	if c.NameContains != nil && !strings.ContainsFold(l.Name, *c.NameContains) {
		return false
	}
	if c.EmailContains != nil && !strings.ContainsFold(l.Email, *c.EmailContains) {
		return false
	}
	if c.FieldOfStudy != nil && !strings.EqualFold(l.FieldOfStudy, *c.FieldOfStudy) {
		return false
	}
	if c.FieldOfStudyContains != nil && !strings.ContainsFold(l.FieldOfStudy, *c.FieldOfStudyContains) {
		return false
	}
	if c.MinAge != nil && l.Age < *c.MinAge {
		return false
	}
	if c.MaxAge != nil && l.Age > *c.MaxAge {
		return false
	}
	return true
}

// SortFields lists the learner attributes accepted as sort keys.
var SortFields = query.Fields[Learner]{
	"id": func(l Learner) query.Value {
		n, err := strconv.Atoi(l.ID)
		if err != nil {
			return query.Absent
		}
		return query.Int(n)
	},
	"name":           func(l Learner) query.Value { return query.String(l.Name) },
	"email":          func(l Learner) query.Value { return query.String(l.Email) },
	"age":            func(l Learner) query.Value { return query.Int(l.Age) },
	"field_of_study": func(l Learner) query.Value { return query.String(l.FieldOfStudy) },
}
