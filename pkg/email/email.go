// Package email validates and normalizes email addresses.
package email

import (
	"strings"

	"github.com/asaskevich/govalidator"
)

// MaxLength bounds accepted addresses.
const MaxLength = 254

// Valid reports whether s has the local@domain.tld shape.
func Valid(s string) bool {
	if s == "" || len(s) > MaxLength || strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at <= 0 || !strings.Contains(s[at+1:], ".") {
		return false
	}
	return govalidator.IsEmail(s)
}

// Normalize trims surrounding whitespace. Case is preserved for display;
// uniqueness checks fold case separately.
func Normalize(s string) string {
	return strings.TrimSpace(s)
}
