package handler

import (
	"time"

	"github.com/99minutos/credential-service/internal/core/domain"
)

// messageResponse is the envelope used for errors and plain acknowledgements.
type messageResponse struct {
	Message string `json:"message"`
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// loginRequest is not validated: a missing field fails like any other wrong
// credential.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message string          `json:"message"`
	User    domain.UserView `json:"user"`
}

type loginResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
