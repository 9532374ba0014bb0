package dto

import "github.com/google/uuid"

// GoogleProfile is the identity returned by the Google userinfo endpoint.
type GoogleProfile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type MeResponse struct {
	ID      uuid.UUID `json:"id"`
	Email   string    `json:"email"`
	Name    string    `json:"name"`
	Picture string    `json:"picture"`
	IsAdmin bool      `json:"isAdmin"`
}

type AddAllowedEmailRequest struct {
	Email string `json:"email"`
}
