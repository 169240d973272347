package ports

import (
	"context"
	"time"

	"github.com/99minutos/credential-service/internal/core/domain"
)

// UserRepository defines the credential store. Implementations must enforce
// email uniqueness at the storage layer and report a violation as
// domain.ErrEmailExists.
type UserRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no user has that email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateLastLogin returns domain.ErrUserNotFound when no row matched id.
	UpdateLastLogin(ctx context.Context, id string, at time.Time) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Ping(ctx context.Context) error
}
