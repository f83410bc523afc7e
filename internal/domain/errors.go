package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidSearchKind = errors.New("invalid search kind")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrValidation        = errors.New("validation failed")
	ErrNotLoggedIn       = errors.New("not logged in")
)
