package service

//go:generate mockgen -destination=../../mocks/mock_verification_generator.go -package=mocks github.com/pitchpractice/auth-service/internal/auth/service VerificationTokenGenerator

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// VerificationTokenGenerator issues and checks email-verification tokens.
type VerificationTokenGenerator interface {
	Generate(accountID, email string) (string, error)
	Verify(tokenString string) (*VerificationClaims, error)
}

// VerificationService mints short-lived signed tokens that prove ownership of
// an email address. The tokens are stateless on purpose: losing one costs a
// re-send, not a support ticket.
type VerificationService struct {
	Secret string
	Expiry time.Duration
}

type VerificationClaims struct {
	jwt.RegisteredClaims
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
}

func NewVerificationService(secret string, expiryMinutes int) *VerificationService {
	return &VerificationService{
		Secret: secret,
		Expiry: time.Duration(expiryMinutes) * time.Minute,
	}
}

func (vs *VerificationService) Generate(accountID, email string) (string, error) {
	now := time.Now()

	claims := VerificationClaims{
		AccountID: accountID,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(vs.Expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(vs.Secret))
}

// Verify parses and validates the given verification token string.
func (vs *VerificationService) Verify(tokenString string) (*VerificationClaims, error) {
	claims := &VerificationClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(vs.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
