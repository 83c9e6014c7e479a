package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pitchpractice/auth-service/config"
	"github.com/pitchpractice/auth-service/internal/auth/domain"
	"github.com/pitchpractice/auth-service/internal/auth/dto"
	"github.com/pitchpractice/auth-service/internal/auth/mailer"
	autherror "github.com/pitchpractice/auth-service/internal/errors"
	authconstant "github.com/pitchpractice/auth-service/pkg/constant"
)

// AccountService owns registration, login and email verification.
type AccountService struct {
	repo     domain.AccountRepository
	sessions SessionIssuer
	verifier VerificationTokenGenerator
	mail     mailer.Mailer
	lockout  LockoutPolicy
	password PasswordPolicy
	log      *slog.Logger
}

func NewAccountService(repo domain.AccountRepository, sessions SessionIssuer,
	verifier VerificationTokenGenerator, mail mailer.Mailer, cfg *config.Config, log *slog.Logger) *AccountService {
	return &AccountService{
		repo:     repo,
		sessions: sessions,
		verifier: verifier,
		mail:     mail,
		lockout:  NewLockoutPolicy(cfg.LockoutThreshold, time.Duration(cfg.LockoutDurationMin)*time.Minute),
		password: NewPasswordPolicy(cfg.PasswordMinLength),
		log:      log,
	}
}

func (s *AccountService) Register(ctx context.Context, input dto.RegisterInput) (*domain.Account, error) {
	email := normalizeEmail(input.Email)
	if !IsValidEmail(email) {
		return nil, autherror.ErrInvalidInput
	}
	if result := s.password.Validate(input.Password); !result.IsValid {
		return nil, &autherror.PasswordPolicyError{Violations: result.Errors}
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	account := &domain.Account{
		ID:                 uuid.New().String(),
		Email:              email,
		Name:               strings.TrimSpace(input.Name),
		PasswordHash:       hash,
		Role:               authconstant.DefaultRole,
		EmailVerified:      false,
		SubscriptionStatus: authconstant.DefaultSubscriptionStatus,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	token, err := s.verifier.Generate(account.ID, account.Email)
	if err != nil {
		s.log.Warn("failed to generate verification token", "account_id", account.ID, "error", err)
		return account, nil
	}
	if err := s.mail.SendVerification(ctx, account.Email, token); err != nil {
		s.log.Warn("failed to send verification email", "account_id", account.ID, "error", err)
	}

	return account, nil
}

// Login runs the full attempt sequence: input validation, account lookup,
// lockout gate, password check, counter bookkeeping, then session issue. An
// active lockout rejects before the password is ever consulted, so a locked
// attacker learns nothing about the credential. Unknown account and wrong
// password collapse into the same error.
func (s *AccountService) Login(ctx context.Context, input dto.LoginInput) (*dto.LoginResult, error) {
	email := normalizeEmail(input.Email)
	if !IsValidEmail(email) || input.Password == "" {
		return nil, autherror.ErrInvalidInput
	}

	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, autherror.ErrInvalidCredentials
	}

	now := time.Now()
	attempts := account.FailedLoginAttempts

	if account.LockedUntil != nil {
		if !s.lockout.Expired(now, *account.LockedUntil) {
			return nil, &autherror.AccountLockedError{Until: *account.LockedUntil}
		}
		// The lockout lapsed; clear it before judging this attempt so the
		// counter starts fresh.
		if err := s.repo.UpdateLoginState(ctx, account.ID, 0, nil); err != nil {
			return nil, err
		}
		attempts = 0
	}

	if !VerifyPassword(input.Password, account.PasswordHash) {
		attempts++
		if s.lockout.ShouldLock(attempts) {
			until := s.lockout.Expiry(now)
			if err := s.repo.UpdateLoginState(ctx, account.ID, attempts, &until); err != nil {
				return nil, err
			}
			return nil, &autherror.AccountLockedError{Until: until}
		}
		if err := s.repo.UpdateLoginState(ctx, account.ID, attempts, nil); err != nil {
			return nil, err
		}
		return nil, autherror.ErrInvalidCredentials
	}

	if err := s.repo.UpdateLoginState(ctx, account.ID, 0, nil); err != nil {
		return nil, err
	}

	if !account.EmailVerified {
		return &dto.LoginResult{
			User:                 dto.NewUserOutput(account),
			RequiresVerification: true,
		}, nil
	}

	session, err := s.sessions.Issue(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResult{
		User:             dto.NewUserOutput(account),
		SessionToken:     session.Token,
		SessionExpiresAt: session.ExpiresAt,
	}, nil
}

// VerifyEmail redeems a verification token. Verifying an already-verified
// account is a no-op success.
func (s *AccountService) VerifyEmail(ctx context.Context, token string) (*domain.Account, error) {
	claims, err := s.verifier.Verify(token)
	if err != nil {
		return nil, autherror.ErrVerificationTokenInvalid
	}

	account, err := s.repo.GetByID(ctx, claims.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil || account.Email != claims.Email {
		return nil, autherror.ErrVerificationTokenInvalid
	}

	if account.EmailVerified {
		return account, nil
	}

	if err := s.repo.MarkEmailVerified(ctx, account.ID); err != nil {
		return nil, err
	}
	account.EmailVerified = true

	return account, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
