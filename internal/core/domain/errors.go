package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedBackend indicates an unknown storage backend.
	ErrUnsupportedBackend = errors.New("unsupported storage backend")

	// ErrWatchUnsupported indicates the configured store cannot be watched for changes.
	ErrWatchUnsupported = errors.New("store does not support watching")
)
