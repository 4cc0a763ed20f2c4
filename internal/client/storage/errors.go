package storage

import "errors"

// Common client storage errors
var (
	// ErrAuthNotFound indicates that no authentication data exists
	ErrAuthNotFound = errors.New("authentication data not found")

	// ErrChangeNotFound indicates that journal entry was not found
	ErrChangeNotFound = errors.New("journal entry not found")

	// ErrDuplicateChange indicates that journal already contains entry with this ID
	ErrDuplicateChange = errors.New("journal entry already exists")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
