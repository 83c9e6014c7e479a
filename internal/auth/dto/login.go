package dto

import "time"

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the service-level outcome of a successful Login call. When
// RequiresVerification is set, no session was issued and SessionToken is
// empty.
type LoginResult struct {
	User                 *UserOutput
	SessionToken         string
	SessionExpiresAt     time.Time
	RequiresVerification bool
}
