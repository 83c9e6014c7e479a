package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pitchpractice/auth-service/internal/auth/dto"
	"github.com/pitchpractice/auth-service/internal/auth/service"
	autherror "github.com/pitchpractice/auth-service/internal/errors"
	authconstant "github.com/pitchpractice/auth-service/pkg/constant"
)

type AuthHandler struct {
	accountService *service.AccountService
	sessionService *service.SessionService
	log            *slog.Logger
}

func NewAuthHandler(accountService *service.AccountService, sessionService *service.SessionService,
	log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		accountService: accountService,
		sessionService: sessionService,
		log:            log,
	}
}

// ExtractSessionToken pulls the session token from the Authorization bearer
// header or, failing that, the session cookie. Empty means absent.
func ExtractSessionToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Cookies(authconstant.SessionCookieName)
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid input")
	}

	account, err := h.accountService.Register(c.UserContext(), input)
	if err != nil {
		var policyErr *autherror.PasswordPolicyError
		switch {
		case errors.Is(err, autherror.ErrInvalidInput):
			return respondError(c, fiber.StatusBadRequest, "a valid email address is required")
		case errors.As(err, &policyErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "password does not meet requirements",
				"errors":  policyErr.Violations,
			})
		case errors.Is(err, autherror.ErrEmailAlreadyInUse):
			return respondError(c, fiber.StatusConflict, "email already in use")
		default:
			h.log.Error("registration failed", "error", err)
			return respondInternalError(c)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Account created. Check your email for a verification link.",
		"user":    dto.NewUserOutput(account),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid input")
	}

	result, err := h.accountService.Login(c.UserContext(), input)
	if err != nil {
		var lockedErr *autherror.AccountLockedError
		switch {
		case errors.Is(err, autherror.ErrInvalidInput):
			return respondError(c, fiber.StatusBadRequest, "email and password are required")
		case errors.As(err, &lockedErr):
			minutes := int(lockedErr.RetryAfter(time.Now()).Minutes())
			return respondError(c, fiber.StatusLocked,
				fmt.Sprintf("account temporarily locked, try again in %d minutes", minutes))
		case errors.Is(err, autherror.ErrInvalidCredentials):
			return respondError(c, fiber.StatusUnauthorized, "invalid email or password")
		default:
			h.log.Error("login failed", "error", err)
			return respondInternalError(c)
		}
	}

	if result.RequiresVerification {
		// Correct password but unverified email: a success variant so the
		// client can branch into its verification flow.
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success":               true,
			"message":               "email verification required",
			"requires_verification": true,
			"user":                  result.User,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":       true,
		"message":       "login successful",
		"user":          result.User,
		"session_token": result.SessionToken,
	})
}

// Me returns the sanitized account for the current session. RequireSession
// has already resolved the token by the time this runs.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := c.Locals(localsUserKey).(*dto.UserOutput)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "invalid or expired session")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// Logout always succeeds from the client's point of view: whatever happens
// internally, the client must be free to clear its local state.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := ExtractSessionToken(c)
	if err := h.sessionService.Revoke(c.UserContext(), token); err != nil {
		h.log.Warn("failed to revoke session on logout", "error", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}

func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var input dto.VerifyEmailInput
	if err := c.BodyParser(&input); err != nil || input.Token == "" {
		return respondError(c, fiber.StatusBadRequest, "verification token is required")
	}

	account, err := h.accountService.VerifyEmail(c.UserContext(), input.Token)
	if err != nil {
		if errors.Is(err, autherror.ErrVerificationTokenInvalid) {
			return respondError(c, fiber.StatusBadRequest, "invalid or expired verification token")
		}
		h.log.Error("email verification failed", "error", err)
		return respondInternalError(c)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "email verified",
		"user":    dto.NewUserOutput(account),
	})
}
