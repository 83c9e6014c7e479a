package service

import (
	"fmt"
	"regexp"
	"unicode"

	"github.com/pitchpractice/auth-service/internal/auth/dto"
)

// emailPattern accepts a single-@ address with a dot somewhere in the domain
// part. Deliverability is not checked.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// PasswordPolicy validates candidate passwords. The zero value rejects
// everything; construct one from config.
type PasswordPolicy struct {
	MinLength int
}

func NewPasswordPolicy(minLength int) PasswordPolicy {
	return PasswordPolicy{MinLength: minLength}
}

// Validate checks the candidate against every rule and reports all
// violations, not just the first.
func (p PasswordPolicy) Validate(password string) dto.PasswordValidation {
	var errs []string

	if len(password) < p.MinLength {
		errs = append(errs, fmt.Sprintf("password must be at least %d characters long", p.MinLength))
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter {
		errs = append(errs, "password must contain at least one letter")
	}
	if !hasDigit {
		errs = append(errs, "password must contain at least one number")
	}

	return dto.PasswordValidation{IsValid: len(errs) == 0, Errors: errs}
}
