package dto

type RegisterInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type VerifyEmailInput struct {
	Token string `json:"token"`
}
