package dto

import (
	"time"

	"github.com/pitchpractice/auth-service/internal/auth/domain"
)

// UserOutput is the sanitized account view returned to clients. Credential
// and lockout fields never appear here.
type UserOutput struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Role               string    `json:"role"`
	EmailVerified      bool      `json:"email_verified"`
	SubscriptionStatus string    `json:"subscription_status"`
	CreatedAt          time.Time `json:"created_at"`
}

func NewUserOutput(a *domain.Account) *UserOutput {
	return &UserOutput{
		ID:                 a.ID,
		Email:              a.Email,
		Name:               a.Name,
		Role:               a.Role,
		EmailVerified:      a.EmailVerified,
		SubscriptionStatus: a.SubscriptionStatus,
		CreatedAt:          a.CreatedAt,
	}
}

// PasswordValidation collects every rule a candidate password violates.
type PasswordValidation struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}
