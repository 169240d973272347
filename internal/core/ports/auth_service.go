package ports

import (
	"context"
	"time"

	"github.com/99minutos/credential-service/internal/core/domain"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      domain.UserView
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.UserView, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}
