package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/99minutos/credential-service/internal/core/domain"
	"github.com/99minutos/credential-service/internal/core/ports"
)

const (
	maxNameLength    = 100
	maxPasswordBytes = 72
)

var validate = validator.New()

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	log    zerolog.Logger
	now    func() time.Time

	// dummyHash is compared against when the email is unknown so that both
	// failure paths pay for one hash comparison at the configured cost.
	dummyHash string
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, log zerolog.Logger) (*AuthService, error) {
	dummy, err := hasher.Hash("credential-service-timing-equaliser")
	if err != nil {
		return nil, fmt.Errorf("new auth service: %w", err)
	}
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
		dummyHash: dummy,
	}, nil
}

// Register creates an account. The email pre-check gives the common case a
// cheap answer; the store's unique constraint settles concurrent inserts.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.UserView, error) {
	name = strings.TrimSpace(name)
	if err := validateRegistration(name, email, password); err != nil {
		return nil, err
	}

	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.ErrEmailExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Status:       domain.StatusActive,
		CreatedAt:    s.now(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			s.log.Info().Str("email", email).Msg("concurrent registration lost uniqueness race")
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("email", email).Msg("user registered")

	view := created.View()
	return &view, nil
}

// Login verifies credentials, records the login time and issues a token.
// No token is issued unless the last-login write succeeded.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now()
	updated, err := s.repo.UpdateLastLogin(ctx, user.ID, now)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
		return nil, fmt.Errorf("login: %w: %w", domain.ErrLastLoginNotRecorded, err)
	}
	s.log.Debug().Str("user_id", user.ID).Time("last_login", now).Msg("last login updated")

	token, expiresAt, err := s.tokens.Issue(updated.ID)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	s.log.Info().Str("user_id", updated.ID).Msg("login successful")

	return &ports.LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      updated.View(),
	}, nil
}

// validateRegistration applies the minimum account policy: a name, a
// syntactically valid address and a password bcrypt can hash in full.
func validateRegistration(name, email, password string) error {
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return fmt.Errorf("%w: name is required and must be at most %d characters", domain.ErrInvalidInput, maxNameLength)
	}
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	if err := validate.Var(email, "email"); err != nil {
		return fmt.Errorf("%w: email must be a valid address", domain.ErrInvalidInput)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", domain.ErrInvalidInput, maxPasswordBytes)
	}
	return nil
}
