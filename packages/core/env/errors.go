package env

import "errors"

var (
	// ErrFileNotFound is returned when the target .env file does not exist.
	ErrFileNotFound = errors.New("env file not found")

	// ErrNotFound is returned by FindFile when no file exists up to the root.
	ErrNotFound = errors.New("no env file found")

	// ErrInvalidKey is returned when a key cannot be written as an assignment.
	ErrInvalidKey = errors.New("invalid key")
)
