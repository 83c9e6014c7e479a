package domain

//go:generate mockgen -destination=../../mocks/mock_repository.go -package=mocks github.com/pitchpractice/auth-service/internal/auth/domain AccountRepository,SessionRepository

import (
	"context"
	"time"
)

// AccountRepository persists accounts and their lockout state. Lookup methods
// return (nil, nil) when no row matches.
type AccountRepository interface {
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
	Create(ctx context.Context, account *Account) error
	// UpdateLoginState writes the failed-attempt counter and lockout expiry.
	// A nil lockedUntil clears the lockout.
	UpdateLoginState(ctx context.Context, id string, failedAttempts int, lockedUntil *time.Time) error
	MarkEmailVerified(ctx context.Context, id string) error
}

type SessionRepository interface {
	CreateSession(ctx context.Context, session *Session) error
	GetSessionByToken(ctx context.Context, token string) (*Session, error)
	TouchSessionLastActive(ctx context.Context, token string, at time.Time) error
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}
