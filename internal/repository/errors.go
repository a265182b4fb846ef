package repository

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrInvalidTransition      = errors.New("invalid transition")
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
)
