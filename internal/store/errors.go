package store

import "errors"

// Sentinel errors. The service layer maps these onto coded domain
// errors before they reach a handler.
var (
	// ErrNotFound is returned when a key or entity does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when creating an entity whose ID or
	// unique index key is already taken.
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrUserNotFound is returned when a user cannot be found by ID or email.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailExists is returned when an email address is already in use.
	ErrEmailExists = errors.New("email already in use")
	// ErrSessionNotFound is returned when a session cannot be found.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired is returned when attempting to use an expired session.
	ErrSessionExpired = errors.New("session expired")
	// ErrBookNotFound is returned when a book cannot be found by ID.
	ErrBookNotFound = errors.New("book not found")
	// ErrBookExists is returned when creating a book with an existing ID.
	ErrBookExists = errors.New("book already exists")
)
