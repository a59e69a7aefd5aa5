package auth

import "time"

type CredentialsDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
	Redirect  string    `json:"redirect"`
}

type checkResponse struct {
	IsAuthenticated bool   `json:"is_authenticated"`
	Email           string `json:"email,omitempty"`
}
