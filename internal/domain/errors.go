package domain

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrNoSession     = errors.New("no active session")
	ErrForbidden     = errors.New("forbidden")
	ErrEmailTaken    = errors.New("email already registered")
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrInvalidInput  = errors.New("invalid input")
)
