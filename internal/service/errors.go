package service

import "errors"

// Domain errors. Handlers map these to HTTP statuses with errors.Is.
var (
	// ErrInvalidCredentials covers both unknown email and wrong password, so
	// the response does not leak which part was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized means the bearer token failed verification or the user
	// it names no longer exists.
	ErrUnauthorized = errors.New("could not validate credentials")
	ErrInvalidToken = errors.New("invalid token")

	ErrUserNotFound = errors.New("user not found")
	ErrBookNotFound = errors.New("book not found")
	ErrVoteNotFound = errors.New("vote does not exist")

	ErrUserExists     = errors.New("user with this email or username already exists")
	ErrEmailExists    = errors.New("email already exists")
	ErrUsernameExists = errors.New("username already exists")
	ErrVoteExists     = errors.New("vote already exists")

	ErrNotOwner     = errors.New("not the book owner")
	ErrBadDirection = errors.New("direction must be -1, 0 or 1")
)
