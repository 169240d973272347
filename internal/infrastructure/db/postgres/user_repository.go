package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/99minutos/credential-service/internal/core/domain"
)

const uniqueViolation = "23505"

// DBTX is the subset of *sql.DB the repository needs.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	PingContext(ctx context.Context) error
}

// UserRepository implements ports.UserRepository on the users table. The
// users_email_key constraint is the authority on email uniqueness.
type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, withHash bool) (*domain.User, error) {
	var (
		u         domain.User
		id        int64
		status    string
		lastLogin sql.NullTime
	)

	dest := []any{&id, &u.Name, &u.Email}
	if withHash {
		dest = append(dest, &u.PasswordHash)
	}
	dest = append(dest, &status, &lastLogin, &u.CreatedAt)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	u.ID = strconv.FormatInt(id, 10)
	u.Status = domain.UserStatus(status)
	u.CreatedAt = u.CreatedAt.UTC()
	if lastLogin.Valid {
		ts := lastLogin.Time.UTC()
		u.LastLogin = &ts
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	status := user.Status
	if status == "" {
		status = domain.StatusActive
	}

	query := `
		INSERT INTO users (name, email, password, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, password, status, last_login, created_at`

	row := r.db.QueryRowContext(ctx, query, user.Name, user.Email, user.PasswordHash, string(status), user.CreatedAt.UTC())
	created, err := scanUser(row, true)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("%w: insert user: %w", domain.ErrStoreUnavailable, err)
	}
	return created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		SELECT id, name, email, password, status, last_login, created_at
		FROM users
		WHERE email = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, email), true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: find user: %w", domain.ErrStoreUnavailable, err)
	}
	return u, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) (*domain.User, error) {
	userID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		UPDATE users SET last_login = $1
		WHERE id = $2
		RETURNING id, name, email, password, status, last_login, created_at`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, at.UTC(), userID), true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: update last login: %w", domain.ErrStoreUnavailable, err)
	}
	return u, nil
}

// List selects the non-secret columns of every row in table order.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, name, email, status, last_login, created_at FROM users`)
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %w", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows, false)
		if err != nil {
			return nil, fmt.Errorf("%w: scan user: %w", domain.ErrStoreUnavailable, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list users: %w", domain.ErrStoreUnavailable, err)
	}
	return users, nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
