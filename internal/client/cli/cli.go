package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iudanet/meetsync/internal/client/iocli"
	"github.com/iudanet/meetsync/internal/client/netstatus"
	"github.com/iudanet/meetsync/internal/client/storage"
	"github.com/iudanet/meetsync/internal/client/sync"
	"github.com/iudanet/meetsync/internal/models"
)

//go:generate moq -out session_mock.go . Session
//go:generate moq -out syncer_mock.go . Syncer

// Session хранилище access token пользователя
type Session interface {
	Login(ctx context.Context, token string) (*storage.AuthData, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*storage.AuthData, error)
}

// Syncer оркестратор синхронизации
type Syncer interface {
	TriggerSync(ctx context.Context) (*sync.Result, error)
	RecordLocalChange(ctx context.Context, table models.Table, operation models.Operation, recordID string, data any, userID string) (*models.LocalChange, error)
	PendingCount(ctx context.Context) (int, error)
}

// PendingLister выдает содержимое журнала
type PendingLister interface {
	Pending(ctx context.Context) ([]*models.LocalChange, error)
}

// Cli команды клиента поверх сервисов синхронизации
type Cli struct {
	io      iocli.IO
	session Session
	syncer  Syncer
	journal PendingLister
	network netstatus.Source
	format  string
}

// New создает Cli
func New(io iocli.IO, session Session, syncer Syncer, journal PendingLister, network netstatus.Source) *Cli {
	return &Cli{
		io:      io,
		session: session,
		syncer:  syncer,
		journal: journal,
		network: network,
		format:  FormatText,
	}
}

// userID возвращает идентификатор вошедшего пользователя
func (c *Cli) userID(ctx context.Context) (string, error) {
	auth, err := c.session.Current(ctx)
	if errors.Is(err, storage.ErrAuthNotFound) {
		return "", fmt.Errorf("not authenticated. Please run 'meetsync login' first")
	}
	if err != nil {
		return "", fmt.Errorf("failed to get auth data: %w", err)
	}
	return auth.UserID, nil
}

// printJSON печатает значение в формате JSON
func (c *Cli) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = c.io.Write(append(data, '\n'))
	return err
}
