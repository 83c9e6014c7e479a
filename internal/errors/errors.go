package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidInput             = errors.New("invalid input")
	ErrInvalidCredentials       = errors.New("invalid email or password")
	ErrEmailAlreadyInUse        = errors.New("email already in use")
	ErrSessionInvalid           = errors.New("invalid or expired session")
	ErrVerificationTokenInvalid = errors.New("invalid or expired verification token")
)

// PasswordPolicyError lists every policy rule a candidate password violated.
type PasswordPolicyError struct {
	Violations []string
}

func (e *PasswordPolicyError) Error() string {
	return "password does not meet requirements: " + strings.Join(e.Violations, "; ")
}

// AccountLockedError reports an active lockout together with its expiry, so
// callers can tell the client how long to wait.
type AccountLockedError struct {
	Until time.Time
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("account locked until %s", e.Until.Format(time.RFC3339))
}

// RetryAfter returns the time remaining until the lockout expires, rounded up
// to whole minutes and never below one minute.
func (e *AccountLockedError) RetryAfter(now time.Time) time.Duration {
	d := e.Until.Sub(now)
	if d < time.Minute {
		return time.Minute
	}
	return d.Round(time.Minute)
}
