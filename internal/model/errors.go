package model

import "errors"

var (
	// ErrUserNotFound is returned by the persistence layer when no user row
	// matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrStorage tags database failures so the HTTP boundary can categorize
	// them without inspecting driver errors.
	ErrStorage = errors.New("storage error")
)
