package domain

import "time"

type Account struct {
	ID                  string
	Email               string
	Name                string
	PasswordHash        string
	Role                string
	EmailVerified       bool
	SubscriptionStatus  string
	FailedLoginAttempts int
	LockedUntil         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Session is an opaque bearer capability: whoever holds Token authenticates
// as AccountID until ExpiresAt.
type Session struct {
	Token        string
	AccountID    string
	ExpiresAt    time.Time
	LastActiveAt time.Time
	CreatedAt    time.Time
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
