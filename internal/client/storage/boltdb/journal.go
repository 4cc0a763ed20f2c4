package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/meetsync/internal/client/storage"
	"github.com/iudanet/meetsync/internal/models"
)

// AppendChange appends a change to the end of the journal.
// Ключ записи - следующее значение последовательности bucket в big-endian,
// поэтому курсор bbolt обходит записи в порядке вставки.
func (s *Storage) AppendChange(ctx context.Context, change *models.LocalChange) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("failed to marshal journal entry: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		journal := tx.Bucket(bucketJournal)
		index := tx.Bucket(bucketJournalIndex)

		if index.Get([]byte(change.ID)) != nil {
			return storage.ErrDuplicateChange
		}

		seq, err := journal.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate journal sequence: %w", err)
		}
		key := seqKey(seq)

		if err := journal.Put(key, data); err != nil {
			return fmt.Errorf("failed to save journal entry: %w", err)
		}
		if err := index.Put([]byte(change.ID), key); err != nil {
			return fmt.Errorf("failed to index journal entry: %w", err)
		}

		return nil
	})
}

// ListChanges returns all journaled changes in insertion order
func (s *Storage) ListChanges(ctx context.Context) ([]*models.LocalChange, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	changes := make([]*models.LocalChange, 0)

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketJournal).ForEach(func(k, v []byte) error {
			var change models.LocalChange
			if err := json.Unmarshal(v, &change); err != nil {
				return fmt.Errorf("failed to unmarshal journal entry: %w", err)
			}
			changes = append(changes, &change)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list journal: %w", err)
	}

	return changes, nil
}

// RemoveChanges removes changes by ID in a single transaction
func (s *Storage) RemoveChanges(ctx context.Context, ids []string) (int, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	removed := 0

	err := s.db.Update(func(tx *bbolt.Tx) error {
		journal := tx.Bucket(bucketJournal)
		index := tx.Bucket(bucketJournalIndex)

		for _, id := range ids {
			key := index.Get([]byte(id))
			if key == nil {
				continue
			}
			// key принадлежит транзакции, копируем перед удалением из индекса
			seq := append([]byte(nil), key...)

			if err := journal.Delete(seq); err != nil {
				return fmt.Errorf("failed to delete journal entry %s: %w", id, err)
			}
			if err := index.Delete([]byte(id)); err != nil {
				return fmt.Errorf("failed to delete journal index %s: %w", id, err)
			}
			removed++
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("remove transaction failed: %w", err)
	}

	return removed, nil
}

// CountChanges returns number of journaled changes
func (s *Storage) CountChanges(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var count int
	err := s.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket(bucketJournal).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count journal entries: %w", err)
	}

	return count, nil
}

// LastChange returns the most recently appended change
func (s *Storage) LastChange(ctx context.Context) (*models.LocalChange, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var change *models.LocalChange

	err := s.db.View(func(tx *bbolt.Tx) error {
		_, v := tx.Bucket(bucketJournal).Cursor().Last()
		if v == nil {
			return storage.ErrChangeNotFound
		}

		change = &models.LocalChange{}
		if err := json.Unmarshal(v, change); err != nil {
			return fmt.Errorf("failed to unmarshal journal entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return change, nil
}

func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
