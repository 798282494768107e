package models

import (
	"strings"
	"unicode/utf8"

	"campus/pkg/email"
	dErrors "campus/pkg/domain-errors"
)

const (
	// MinAge is the youngest age a learner can be registered with.
	MinAge = 18
	// DefaultFieldOfStudy is assigned when none is given.
	DefaultFieldOfStudy = "Undeclared"
	maxNameLength       = 128
)

// Learner is a registered student.
//
// Invariants:
//   - ID is allocator-issued and never reused
//   - Name is non-empty and at most 128 characters
//   - Email has the local@domain.tld shape and is unique among learners,
//     ignoring case
//   - Age is at least 18
//   - FieldOfStudy is never empty; it defaults to "Undeclared"
type Learner struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Age          int    `json:"age"`
	FieldOfStudy string `json:"field_of_study"`
}

// NewLearner builds a learner from a create request, applying defaults and
// validating every field.
func NewLearner(id string, req CreateRequest) (*Learner, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	field := DefaultFieldOfStudy
	if req.FieldOfStudy != nil && *req.FieldOfStudy != "" {
		field = *req.FieldOfStudy
	}
	return &Learner{
		ID:           id,
		Name:         req.Name,
		Email:        req.Email,
		Age:          req.Age,
		FieldOfStudy: field,
	}, nil
}

// CreateRequest carries the fields for a new learner.
type CreateRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Age          int     `json:"age"`
	FieldOfStudy *string `json:"field_of_study,omitempty"`
}

// Normalize trims whitespace from string fields.
func (r *CreateRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = email.Normalize(r.Email)
	if r.FieldOfStudy != nil {
		trimmed := strings.TrimSpace(*r.FieldOfStudy)
		r.FieldOfStudy = &trimmed
	}
}

// Validate checks every field. Call Normalize first.
func (r *CreateRequest) Validate() error {
	if err := validateName(r.Name); err != nil {
		return err
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	return validateAge(r.Age)
}

// UpdateRequest carries a partial update. Nil fields are left untouched and
// are not validated.
type UpdateRequest struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	Age          *int    `json:"age,omitempty"`
	FieldOfStudy *string `json:"field_of_study,omitempty"`
}

// Normalize trims whitespace from supplied string fields.
func (r *UpdateRequest) Normalize() {
	trim := func(p *string) *string {
		if p == nil {
			return nil
		}
		v := strings.TrimSpace(*p)
		return &v
	}
	r.Name = trim(r.Name)
	r.Email = trim(r.Email)
	r.FieldOfStudy = trim(r.FieldOfStudy)
}

// Validate checks only the supplied fields. Call Normalize first.
func (r *UpdateRequest) Validate() error {
	if r.Name != nil {
		if err := validateName(*r.Name); err != nil {
			return err
		}
	}
	if r.Email != nil {
		if err := validateEmail(*r.Email); err != nil {
			return err
		}
	}
	if r.Age != nil {
		if err := validateAge(*r.Age); err != nil {
			return err
		}
	}
	return nil
}

// ApplyTo returns a copy of l with the supplied fields replaced.
func (r *UpdateRequest) ApplyTo(l Learner) Learner {
	if r.Name != nil {
		l.Name = *r.Name
	}
	if r.Email != nil {
		l.Email = *r.Email
	}
	if r.Age != nil {
		l.Age = *r.Age
	}
	if r.FieldOfStudy != nil {
		l.FieldOfStudy = *r.FieldOfStudy
		if l.FieldOfStudy == "" {
			l.FieldOfStudy = DefaultFieldOfStudy
		}
	}
	return l
}

func validateName(name string) error {
	if name == "" {
		return dErrors.New(dErrors.CodeValidation, "name cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return dErrors.New(dErrors.CodeValidation, "name must be 128 characters or less")
	}
	return nil
}

func validateEmail(s string) error {
	if !email.Valid(s) {
		return dErrors.New(dErrors.CodeValidation, "invalid email format")
	}
	return nil
}

func validateAge(age int) error {
	if age < MinAge {
		return dErrors.New(dErrors.CodeValidation, "age must be at least 18")
	}
	return nil
}
