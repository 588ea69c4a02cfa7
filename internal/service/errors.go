package service

import "errors"

// Client-facing failures. The error text is the message returned to callers.
var (
	// ErrMissingCredentials indicates an empty username or password.
	ErrMissingCredentials = errors.New("missing username and/or password")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username has been registered")
	// ErrInvalidCredentials covers both an unknown username and a wrong password.
	ErrInvalidCredentials = errors.New("incorrect username or password")
	// ErrTitleRequired indicates a post without a title.
	ErrTitleRequired = errors.New("title is required")
	// ErrUnknownUser is returned when a token names a user the store does not hold.
	ErrUnknownUser = errors.New("user not found")
	// ErrPostNotFound is returned when a post does not exist or belongs to another user.
	ErrPostNotFound = errors.New("post not found or user not authorised")
)
