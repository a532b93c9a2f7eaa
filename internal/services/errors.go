package services

import "errors"

// ErrLoginRequired is matched by every action-specific login error below.
var ErrLoginRequired = errors.New("login required")

type loginError struct {
	message string
}

func (e *loginError) Error() string { return e.message }

func (e *loginError) Unwrap() error { return ErrLoginRequired }

var (
	ErrLoginToLike     error = &loginError{"Please login to like posts"}
	ErrLoginToBookmark error = &loginError{"Please login to bookmark posts"}
	ErrLoginToComment  error = &loginError{"Please login to comment"}
	ErrLoginToContinue error = &loginError{"Please login to continue"}
)

var (
	ErrEmptyComment        = errors.New("Please enter a comment")
	ErrPasswordMismatch    = errors.New("Passwords do not match")
	ErrNotPostAuthor       = errors.New("You can only modify your own posts")
	ErrInvalidCredentials  = errors.New("Invalid email or password")
	ErrInvalidSession      = errors.New("Invalid or expired session")
	ErrUnsupportedProvider = errors.New("operation not supported by the configured identity provider")
)
