package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pitchpractice/auth-service/config"
	"github.com/pitchpractice/auth-service/internal/auth/domain"
	"github.com/pitchpractice/auth-service/internal/auth/dto"
	"github.com/pitchpractice/auth-service/internal/auth/service"
	autherror "github.com/pitchpractice/auth-service/internal/errors"
	"github.com/pitchpractice/auth-service/internal/mocks"
	authconstant "github.com/pitchpractice/auth-service/pkg/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type accountServiceFixture struct {
	service  *service.AccountService
	repo     *mocks.MockAccountRepository
	issuer   *mocks.MockSessionIssuer
	verifier *mocks.MockVerificationTokenGenerator
	mail     *mocks.MockMailer
}

func newAccountService(t *testing.T) accountServiceFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	cfg := &config.Config{
		LockoutThreshold:   5,
		LockoutDurationMin: 15,
		PasswordMinLength:  8,
	}

	f := accountServiceFixture{
		repo:     mocks.NewMockAccountRepository(ctrl),
		issuer:   mocks.NewMockSessionIssuer(ctrl),
		verifier: mocks.NewMockVerificationTokenGenerator(ctrl),
		mail:     mocks.NewMockMailer(ctrl),
	}
	f.service = service.NewAccountService(f.repo, f.issuer, f.verifier, f.mail, cfg, discardLogger())

	return f
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAccountService_Register_Success(t *testing.T) {
	f := newAccountService(t)

	input := dto.RegisterInput{
		Email:    "New.User@Example.com",
		Name:     "New User",
		Password: "password1",
	}

	f.repo.EXPECT().GetByEmail(gomock.Any(), "new.user@example.com").Return(nil, nil)
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	f.verifier.EXPECT().Generate(gomock.Any(), "new.user@example.com").Return("verify-token", nil)
	f.mail.EXPECT().SendVerification(gomock.Any(), "new.user@example.com", "verify-token").Return(nil)

	account, err := f.service.Register(context.Background(), input)

	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, "new.user@example.com", account.Email)
	assert.Equal(t, "New User", account.Name)
	assert.Equal(t, authconstant.DefaultRole, account.Role)
	assert.Equal(t, authconstant.DefaultSubscriptionStatus, account.SubscriptionStatus)
	assert.False(t, account.EmailVerified)
	assert.NotEmpty(t, account.ID)
	assert.True(t, service.VerifyPassword("password1", account.PasswordHash))
}

func TestAccountService_Register_InvalidEmail(t *testing.T) {
	f := newAccountService(t)

	// No repo expectations: validation failures never touch the store.
	_, err := f.service.Register(context.Background(), dto.RegisterInput{
		Email:    "not-an-email",
		Password: "password1",
	})

	assert.ErrorIs(t, err, autherror.ErrInvalidInput)
}

func TestAccountService_Register_WeakPassword(t *testing.T) {
	f := newAccountService(t)

	_, err := f.service.Register(context.Background(), dto.RegisterInput{
		Email:    "user@example.com",
		Password: "short",
	})

	var policyErr *autherror.PasswordPolicyError
	require.ErrorAs(t, err, &policyErr)
	assert.NotEmpty(t, policyErr.Violations)
}

func TestAccountService_Register_EmailAlreadyInUse(t *testing.T) {
	f := newAccountService(t)

	existing := &domain.Account{ID: "existing-id", Email: "user@example.com"}
	f.repo.EXPECT().GetByEmail(gomock.Any(), "user@example.com").Return(existing, nil)

	_, err := f.service.Register(context.Background(), dto.RegisterInput{
		Email:    "user@example.com",
		Password: "password1",
	})

	assert.ErrorIs(t, err, autherror.ErrEmailAlreadyInUse)
}

func TestAccountService_Register_MailFailureDoesNotFail(t *testing.T) {
	f := newAccountService(t)

	f.repo.EXPECT().GetByEmail(gomock.Any(), "user@example.com").Return(nil, nil)
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	f.verifier.EXPECT().Generate(gomock.Any(), "user@example.com").Return("verify-token", nil)
	f.mail.EXPECT().SendVerification(gomock.Any(), "user@example.com", "verify-token").
		Return(errors.New("smtp unreachable"))

	account, err := f.service.Register(context.Background(), dto.RegisterInput{
		Email:    "user@example.com",
		Password: "password1",
	})

	require.NoError(t, err)
	assert.NotNil(t, account)
}

func verifiedAccount(t *testing.T, password string) *domain.Account {
	t.Helper()
	return &domain.Account{
		ID:                 "account-123",
		Email:              "user@example.com",
		Name:               "Test User",
		PasswordHash:       hashFor(t, password),
		Role:               authconstant.RoleRep,
		EmailVerified:      true,
		SubscriptionStatus: authconstant.SubscriptionTrial,
		CreatedAt:          time.Now().Add(-24 * time.Hour),
	}
}

func TestAccountService_Login_Success(t *testing.T) {
	f := newAccountService(t)

	account := verifiedAccount(t, "correct-pass1")
	session := &domain.Session{Token: "session-token", ExpiresAt: time.Now().Add(time.Hour)}

	f.repo.EXPECT().GetByEmail(gomock.Any(), "user@example.com").Return(account, nil)
	f.repo.EXPECT().UpdateLoginState(gomock.Any(), "account-123", 0, nil).Return(nil)
	f.issuer.EXPECT().Issue(gomock.Any(), "account-123").Return(session, nil)

	result, err := f.service.Login(context.Background(), dto.LoginInput{
		Email:    "User@Example.com",
		Password: "correct-pass1",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.RequiresVerification)
	assert.Equal(t, "session-token", result.SessionToken)
	assert.Equal(t, "account-123", result.User.ID)
	assert.Equal(t, "user@example.com", result.User.Email)
}

func TestAccountService_Login_InvalidInput(t *testing.T) {
	f := newAccountService(t)

	testCases := []dto.LoginInput{
		{Email: "", Password: "password1"},
		{Email: "not-an-email", Password: "password1"},
		{Email: "user@example.com", Password: ""},
	}

	for _, input := range testCases {
		_, err := f.service.Login(context.Background(), input)
		assert.ErrorIs(t, err, autherror.ErrInvalidInput)
	}
}

func TestAccountService_Login_UnknownAccount(t *testing.T) {
	f := newAccountService(t)

	f.repo.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, nil)

	_, err := f.service.Login(context.Background(), dto.LoginInput{
		Email:    "nobody@example.com",
		Password: "password1",
	})

	// Same error as a wrong password, so callers cannot tell the two apart.
	assert.ErrorIs(t, err, autherror.ErrInvalidCredentials)
}

func TestAccountService_Login_StoreError(t *testing.T) {
	f := newAccountService(t)

	storeErr := errors.New("connection refused")
	f.repo.EXPECT().GetByEmail(gomock.Any(), "user@example.com").Return(nil, storeErr)

	_, err := f.service.Login(context.Background(), dto.LoginInput{
		Email:    "user@example.com",
		Password: "password1",
	})

	assert.ErrorIs(t, err, storeErr)
}

func TestAccountService_Login_WrongPasswordIncrementsCounter(t *testing.T) {
	f := newAccountService(t)

	account := verifiedAccount(t, "correct-pass1")
	account.FailedLoginAttempts = 2

	f.repo.EXPECT().GetByEmail(gomock.Any(), "user@example.com").Return(account, nil)
	f.repo.EXPECT().UpdateLoginState(gomock.Any(), "account-123", 3, nil).Return(nil)

	_, err := f.service.Login(context.Background(), dto.LoginInput{
		Email:    "user@example.com",
		Password: "wrong-pass1",
	})

	assert.ErrorIs(t, err, autherror.ErrInvalidCredentials)
}

func TestAccountService_Login_CrossingThresholdLocks(t *testing.T) {
	f := newAccountService(t)

	account := verifiedAccount(t, "correct-pass1")
	account.FailedLoginAttempts = 4

	var lockedUntil *time.Time
	f.repo.EXPECT().GetByEmail(gomock.Any(), "user@example.com").Return(account, nil)
	f.repo.EXPECT().UpdateLoginState(gomock.Any(), "account-123", 5, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ int, until *time.Time) error {
			lockedUntil = until
			return nil
		})

	_, err := f.service.Login(context.Background(), dto.LoginInput{
		Email:    "user@example.com",
		Password: "wrong-pass1",
	})

	// Crossing the threshold reports "locked", not "invalid credentials".
	var lockedErr *autherror.AccountLockedError
	require.ErrorAs(t, err, &lockedErr)
	require.NotNil(t, lockedUntil)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), *lockedUntil, 5*time.Second)
	assert.Equal(t, *lockedUntil, lockedErr.Until)
}

func TestAccountService_Login_ActiveLockoutShortCircuits(t *testing.T) {
	f := newAccountService(t)

	until := time.Now().Add(10 * time.Minute)
	account := verifiedAccount(t, "correct-pass1")
	account.FailedLoginAttempts = 5
	account.LockedUntil = &until

	// Only the lookup: no state write, no password consulted, even with the
	// correct password.
	f.repo.EXPECT().GetByEmail(gomock.Any(), "user@example.com").Return(account, nil)

	_, err := f.service.Login(context.Background(), dto.LoginInput{
		Email:    "user@example.com",
		Password: "correct-pass1",
	})

	var lockedErr *autherror.AccountLockedError
	require.ErrorAs(t, err, &lockedErr)
	assert.Equal(t, until, lockedErr.Until)
}

func TestAccountService_Login_ExpiredLockoutStartsFresh(t *testing.T) {
	f := newAccountService(t)

	until := time.Now().Add(-time.Minute)
	account := verifiedAccount(t, "correct-pass1")
	account.FailedLoginAttempts = 5
	account.LockedUntil = &until

	f.repo.EXPECT().GetByEmail(gomock.Any(), "user@example.com").Return(account, nil)
	// Observing the expired lockout clears it first; the new failure then
	// counts from 1, not 6.
	gomock.InOrder(
		f.repo.EXPECT().UpdateLoginState(gomock.Any(), "account-123", 0, nil).Return(nil),
		f.repo.EXPECT().UpdateLoginState(gomock.Any(), "account-123", 1, nil).Return(nil),
	)

	_, err := f.service.Login(context.Background(), dto.LoginInput{
		Email:    "user@example.com",
		Password: "wrong-pass1",
	})

	assert.ErrorIs(t, err, autherror.ErrInvalidCredentials)
}

func TestAccountService_Login_UnverifiedAccount(t *testing.T) {
	f := newAccountService(t)

	account := verifiedAccount(t, "correct-pass1")
	account.EmailVerified = false

	f.repo.EXPECT().GetByEmail(gomock.Any(), "user@example.com").Return(account, nil)
	f.repo.EXPECT().UpdateLoginState(gomock.Any(), "account-123", 0, nil).Return(nil)
	// No session issue for unverified accounts.

	result, err := f.service.Login(context.Background(), dto.LoginInput{
		Email:    "user@example.com",
		Password: "correct-pass1",
	})

	require.NoError(t, err)
	assert.True(t, result.RequiresVerification)
	assert.Empty(t, result.SessionToken)
	assert.Equal(t, "account-123", result.User.ID)
}

func TestAccountService_VerifyEmail_Success(t *testing.T) {
	f := newAccountService(t)

	account := verifiedAccount(t, "correct-pass1")
	account.EmailVerified = false
	claims := &service.VerificationClaims{AccountID: "account-123", Email: "user@example.com"}

	f.verifier.EXPECT().Verify("verify-token").Return(claims, nil)
	f.repo.EXPECT().GetByID(gomock.Any(), "account-123").Return(account, nil)
	f.repo.EXPECT().MarkEmailVerified(gomock.Any(), "account-123").Return(nil)

	got, err := f.service.VerifyEmail(context.Background(), "verify-token")

	require.NoError(t, err)
	assert.True(t, got.EmailVerified)
}

func TestAccountService_VerifyEmail_InvalidToken(t *testing.T) {
	f := newAccountService(t)

	f.verifier.EXPECT().Verify("bad-token").Return(nil, errors.New("token is expired"))

	_, err := f.service.VerifyEmail(context.Background(), "bad-token")
	assert.ErrorIs(t, err, autherror.ErrVerificationTokenInvalid)
}

func TestAccountService_VerifyEmail_AlreadyVerified(t *testing.T) {
	f := newAccountService(t)

	account := verifiedAccount(t, "correct-pass1")
	claims := &service.VerificationClaims{AccountID: "account-123", Email: "user@example.com"}

	f.verifier.EXPECT().Verify("verify-token").Return(claims, nil)
	f.repo.EXPECT().GetByID(gomock.Any(), "account-123").Return(account, nil)
	// No MarkEmailVerified call: re-verification is a no-op.

	got, err := f.service.VerifyEmail(context.Background(), "verify-token")

	require.NoError(t, err)
	assert.True(t, got.EmailVerified)
}

func TestAccountService_VerifyEmail_EmailMismatch(t *testing.T) {
	f := newAccountService(t)

	account := verifiedAccount(t, "correct-pass1")
	account.EmailVerified = false
	claims := &service.VerificationClaims{AccountID: "account-123", Email: "old@example.com"}

	f.verifier.EXPECT().Verify("verify-token").Return(claims, nil)
	f.repo.EXPECT().GetByID(gomock.Any(), "account-123").Return(account, nil)

	_, err := f.service.VerifyEmail(context.Background(), "verify-token")
	assert.ErrorIs(t, err, autherror.ErrVerificationTokenInvalid)
}
