package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	ErrInvalidReference = errors.New("invalid event reference")
	ErrEmptyEvent       = errors.New("event has no matches")
	ErrFetch            = errors.New("match fetch failed")
	ErrParse            = errors.New("match payload malformed")
	ErrPersistence      = errors.New("stat record persistence failed")
)
