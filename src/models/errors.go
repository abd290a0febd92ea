package models

import "errors"

// Storage outcomes shared by every repository implementation.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
	ErrInUse    = errors.New("still referenced")
)
