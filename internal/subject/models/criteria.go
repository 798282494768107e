package models

import (
	"strconv"

	"campus/internal/query"
	"campus/pkg/platform/strings"
)

// Criteria filters subjects. Nil fields impose no constraint.
type Criteria struct {
	NameContains     *string
	CodeStartsWith   *string
	EducatorContains *string
	MinCreditHours   *int
	MaxCreditHours   *int
}

func (c *Criteria) Matches(s Subject) bool {
	if c == nil {
		return true
	}
	if c.NameContains != nil && !strings.ContainsFold(s.Name, *c.NameContains) {
		return false
	}
	if c.CodeStartsWith != nil && !strings.HasPrefixFold(s.Code, *c.CodeStartsWith) {
		return false
	}
	if c.EducatorContains != nil && !strings.ContainsFold(s.Educator, *c.EducatorContains) {
		return false
	}
	if c.MinCreditHours != nil && s.CreditHours < *c.MinCreditHours {
		return false
	}
	if c.MaxCreditHours != nil && s.CreditHours > *c.MaxCreditHours {
		return false
	}
	return true
}

var SortFields = query.Fields[Subject]{
	"id": func(s Subject) query.Value {
		n, err := strconv.Atoi(s.ID)
		if err != nil {
			return query.Absent
		}
		return query.Int(n)
	},
	"name":         func(s Subject) query.Value { return query.String(s.Name) },
	"code":         func(s Subject) query.Value { return query.String(s.Code) },
	"credit_hours": func(s Subject) query.Value { return query.Int(s.CreditHours) },
	"educator":     func(s Subject) query.Value { return query.String(s.Educator) },
}
