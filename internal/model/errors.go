package model

import "errors"

var (
	// ErrNotFound means no record exists at the given key.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateUsername means the username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrDuplicateEmail means the email is already taken.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrUnauthenticated means the request carries no valid identity.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden means the identity lacks a role or ownership.
	ErrForbidden = errors.New("access denied")
	// ErrInvalidCredentials is the single login failure: it deliberately
	// does not distinguish unknown user, inactive account and wrong
	// password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidInput means a request field failed a basic shape check.
	ErrInvalidInput = errors.New("invalid input")
)
