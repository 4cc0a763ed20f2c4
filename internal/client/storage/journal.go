package storage

import (
	"context"

	"github.com/iudanet/meetsync/internal/models"
)

//go:generate moq -out journalstorage_mock.go . JournalStorage

// JournalStorage defines interface for durable storage of pending local changes.
// Implementations must preserve insertion order.
type JournalStorage interface {
	// AppendChange appends a change to the end of the journal
	// Returns ErrDuplicateChange if change with same ID already exists
	AppendChange(ctx context.Context, change *models.LocalChange) error

	// ListChanges returns all journaled changes in insertion order
	ListChanges(ctx context.Context) ([]*models.LocalChange, error)

	// RemoveChanges removes changes by ID and returns number of removed entries
	// Unknown IDs are ignored
	RemoveChanges(ctx context.Context, ids []string) (int, error)

	// CountChanges returns number of journaled changes
	CountChanges(ctx context.Context) (int, error)

	// LastChange returns the most recently appended change
	// Returns ErrChangeNotFound if journal is empty
	LastChange(ctx context.Context) (*models.LocalChange, error)
}
