package identity

import "errors"

var (
	ErrInvalidEmail       = errors.New("email address is invalid")
	ErrEmailTaken         = errors.New("account with this email already exists")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
)
