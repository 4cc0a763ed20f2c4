package storage

import "errors"

// Common storage errors
var (
	// ErrNotFound indicates that record was not found in storage
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists indicates that record with this ID already exists
	ErrAlreadyExists = errors.New("record already exists")

	// ErrReferenceNotFound indicates that record references a missing parent row
	ErrReferenceNotFound = errors.New("referenced record not found")
)
