package storage

import (
	"context"
	"time"

	"github.com/iudanet/meetsync/internal/models"
)

// Store defines CRUD access to one table of authoritative entities keyed by record ID
type Store[E models.Entity] interface {
	// Get returns entity by ID
	// Returns ErrNotFound if entity doesn't exist
	Get(ctx context.Context, id string) (E, error)

	// Create inserts new entity
	// Returns ErrAlreadyExists if entity with the same ID exists,
	// ErrReferenceNotFound if referenced record is missing
	Create(ctx context.Context, entity E) error

	// Update replaces stored entity fields
	// Returns ErrNotFound if entity doesn't exist
	Update(ctx context.Context, entity E) error

	// Delete removes entity with dependent rows
	// Returns ErrNotFound if entity doesn't exist
	Delete(ctx context.Context, id string) error
}

// EventStore хранилище событий (слоты хранятся вместе с событием)
type EventStore = Store[*models.Event]

// ParticipantStore хранилище участников
type ParticipantStore = Store[*models.Participant]

// VoteStore хранилище голосов
type VoteStore = Store[*models.Vote]

// TombstoneStore хранит время удаления записей. Без него повторно
// присланный CREATE удаленной записи создал бы ее заново.
type TombstoneStore interface {
	// Get returns deletion time of the record
	// Returns ErrNotFound if record was never deleted
	Get(ctx context.Context, table models.Table, id string) (time.Time, error)

	// Put stores deletion time, keeping the latest one
	Put(ctx context.Context, table models.Table, id string, deletedAt time.Time) error
}

// Repositories набор хранилищ, работающих в одной транзакции
type Repositories struct {
	Events       EventStore
	Participants ParticipantStore
	Votes        VoteStore
	Tombstones   TombstoneStore
}

// Storage defines authoritative server storage
type Storage interface {
	// InTx runs fn in a single transaction.
	// Transaction is committed if fn returns nil and rolled back otherwise.
	InTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error

	// Ping checks that storage is reachable
	Ping(ctx context.Context) error

	// Close releases storage resources
	Close() error
}
