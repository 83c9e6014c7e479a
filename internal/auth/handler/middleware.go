package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/pitchpractice/auth-service/internal/auth/dto"
	autherror "github.com/pitchpractice/auth-service/internal/errors"
)

const localsUserKey = "auth.user"

// RequireSession resolves the request's session token and stores the
// sanitized user in locals. A missing, unknown or expired token yields the
// same 401, so callers cannot probe which tokens exist.
func (h *AuthHandler) RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := ExtractSessionToken(c)
		if token == "" {
			return respondError(c, fiber.StatusUnauthorized, "invalid or expired session")
		}

		account, err := h.sessionService.Resolve(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, autherror.ErrSessionInvalid) {
				return respondError(c, fiber.StatusUnauthorized, "invalid or expired session")
			}
			h.log.Error("session resolution failed", "error", err)
			return respondInternalError(c)
		}

		c.Locals(localsUserKey, dto.NewUserOutput(account))

		return c.Next()
	}
}
