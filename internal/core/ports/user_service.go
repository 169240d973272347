package ports

import (
	"context"

	"github.com/99minutos/credential-service/internal/core/domain"
)

// UserService exposes read access to registered accounts.
type UserService interface {
	List(ctx context.Context) ([]domain.UserView, error)
}
