package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"campus/pkg/email"
	dErrors "campus/pkg/domain-errors"
)

// MinPasswordLength is the shortest password a credential can be registered with.
const MinPasswordLength = 8

// User is a system credential allowed to perform mutations. It is unrelated
// to learners.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// CurrentUser is the identity carried by a verified bearer token.
type CurrentUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      CurrentUser `json:"user"`
}

// CredentialRequest carries an email and password for register or login.
type CredentialRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize trims the email. Passwords are taken verbatim.
func (r *CredentialRequest) Normalize() {
	r.Email = email.Normalize(r.Email)
}

// Validate enforces the registration rules.
func (r *CredentialRequest) Validate() error {
	if !email.Valid(r.Email) {
		return dErrors.New(dErrors.CodeValidation, "invalid email format")
	}
	if utf8.RuneCountInString(r.Password) < MinPasswordLength {
		return dErrors.New(dErrors.CodeValidation, "password must be at least 8 characters")
	}
	if strings.TrimSpace(r.Password) == "" {
		return dErrors.New(dErrors.CodeValidation, "password cannot be blank")
	}
	return nil
}
