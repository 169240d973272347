package domain

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrEmailExists          = errors.New("email already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("incorrect email or password")
	ErrUnauthenticated      = errors.New("authentication token required")
	ErrInvalidToken         = errors.New("invalid token")
	ErrStoreUnavailable     = errors.New("credential store unavailable")
	ErrLastLoginNotRecorded = errors.New("last login not recorded")
)
