package service

//go:generate mockgen -destination=../../mocks/mock_session_issuer.go -package=mocks github.com/pitchpractice/auth-service/internal/auth/service SessionIssuer

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"time"

	"github.com/pitchpractice/auth-service/internal/auth/domain"
	autherror "github.com/pitchpractice/auth-service/internal/errors"
)

const sessionTokenBytes = 32

// SessionIssuer creates sessions for freshly authenticated accounts.
type SessionIssuer interface {
	Issue(ctx context.Context, accountID string) (*domain.Session, error)
}

// SessionService issues, resolves and revokes opaque session tokens backed by
// the session store.
type SessionService struct {
	sessions domain.SessionRepository
	accounts domain.AccountRepository
	lifetime time.Duration
	log      *slog.Logger
}

func NewSessionService(sessions domain.SessionRepository, accounts domain.AccountRepository,
	lifetime time.Duration, log *slog.Logger) *SessionService {
	return &SessionService{
		sessions: sessions,
		accounts: accounts,
		lifetime: lifetime,
		log:      log,
	}
}

// Issue generates a high-entropy token and durably stores the session before
// handing the token out. A token the resolver cannot honor must never reach a
// client.
func (s *SessionService) Issue(ctx context.Context, accountID string) (*domain.Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &domain.Session{
		Token:        token,
		AccountID:    accountID,
		ExpiresAt:    now.Add(s.lifetime),
		LastActiveAt: now,
		CreatedAt:    now,
	}

	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Resolve maps a token to its account. Not-found and expired collapse into
// one ErrSessionInvalid so callers cannot probe which tokens exist. The
// last-activity touch is best-effort; concurrent touches are
// last-writer-wins.
func (s *SessionService) Resolve(ctx context.Context, token string) (*domain.Account, error) {
	if token == "" {
		return nil, autherror.ErrSessionInvalid
	}

	session, err := s.sessions.GetSessionByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if session == nil || session.Expired(now) {
		return nil, autherror.ErrSessionInvalid
	}

	if err := s.sessions.TouchSessionLastActive(ctx, token, now); err != nil {
		s.log.Warn("failed to update session last activity", "error", err)
	}

	account, err := s.accounts.GetByID(ctx, session.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, autherror.ErrSessionInvalid
	}

	return account, nil
}

// Revoke deletes the session for the given token. Deleting an unknown token
// is not an error; logout is idempotent.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.DeleteSession(ctx, token)
}

// SweepExpired deletes sessions past their expiry and returns how many rows
// went away.
func (s *SessionService) SweepExpired(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpiredSessions(ctx, time.Now())
}

func generateToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
