package models

import (
	"strings"

	dErrors "campus/pkg/domain-errors"
)

const (
	MinCreditHours = 1
	MaxCreditHours = 5
)

// Subject is a course learners can register for.
//
// Invariants:
//   - ID is allocator-issued and never reused
//   - Name, Code and Educator are non-blank
//   - Code is unique among subjects, ignoring case
//   - CreditHours is within [1,5]
type Subject struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	CreditHours int    `json:"credit_hours"`
	Educator    string `json:"educator"`
}

// NewSubject builds a subject from a create request.
func NewSubject(id string, req CreateRequest) (*Subject, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &Subject{
		ID:          id,
		Name:        req.Name,
		Code:        req.Code,
		CreditHours: req.CreditHours,
		Educator:    req.Educator,
	}, nil
}

type CreateRequest struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	CreditHours int    `json:"credit_hours"`
	Educator    string `json:"educator"`
}

func (r *CreateRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Code = strings.TrimSpace(r.Code)
	r.Educator = strings.TrimSpace(r.Educator)
}

func (r *CreateRequest) Validate() error {
	if err := required("name", r.Name); err != nil {
		return err
	}
	if err := required("code", r.Code); err != nil {
		return err
	}
	if err := validateCreditHours(r.CreditHours); err != nil {
		return err
	}
	return required("educator", r.Educator)
}

// UpdateRequest carries a partial update. Nil fields are left untouched.
type UpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Code        *string `json:"code,omitempty"`
	CreditHours *int    `json:"credit_hours,omitempty"`
	Educator    *string `json:"educator,omitempty"`
}

func (r *UpdateRequest) Normalize() {
	for _, p := range []**string{&r.Name, &r.Code, &r.Educator} {
		if *p != nil {
			v := strings.TrimSpace(**p)
			*p = &v
		}
	}
}

// Validate checks only the supplied fields.
func (r *UpdateRequest) Validate() error {
	if r.Name != nil {
		if err := required("name", *r.Name); err != nil {
			return err
		}
	}
	if r.Code != nil {
		if err := required("code", *r.Code); err != nil {
			return err
		}
	}
	if r.CreditHours != nil {
		if err := validateCreditHours(*r.CreditHours); err != nil {
			return err
		}
	}
	if r.Educator != nil {
		if err := required("educator", *r.Educator); err != nil {
			return err
		}
	}
	return nil
}

// ApplyTo returns a copy of s with the supplied fields replaced.
func (r *UpdateRequest) ApplyTo(s Subject) Subject {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Code != nil {
		s.Code = *r.Code
	}
	if r.CreditHours != nil {
		s.CreditHours = *r.CreditHours
	}
	if r.Educator != nil {
		s.Educator = *r.Educator
	}
	return s
}

func required(field, value string) error {
	if value == "" {
		return dErrors.New(dErrors.CodeValidation, field+" cannot be empty")
	}
	return nil
}

func validateCreditHours(h int) error {
	if h < MinCreditHours || h > MaxCreditHours {
		return dErrors.New(dErrors.CodeValidation, "credit hours must be between 1 and 5")
	}
	return nil
}
