package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/meetsync/internal/client/iocli"
	"github.com/iudanet/meetsync/internal/client/netstatus"
	"github.com/iudanet/meetsync/internal/client/storage"
	clientsync "github.com/iudanet/meetsync/internal/client/sync"
	"github.com/iudanet/meetsync/internal/models"
	"github.com/iudanet/meetsync/pkg/api"
)

type pendingListerFunc func(ctx context.Context) ([]*models.LocalChange, error)

func (f pendingListerFunc) Pending(ctx context.Context) ([]*models.LocalChange, error) {
	return f(ctx)
}

type testEnv struct {
	cli     *Cli
	out     *bytes.Buffer
	session *SessionMock
	syncer  *SyncerMock
	network *netstatus.SourceMock
	pending []*models.LocalChange
	secret  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{out: &bytes.Buffer{}}
	io := &iocli.IOMock{
		PrintlnFunc: func(a ...any) { _, _ = fmt.Fprintln(env.out, a...) },
		PrintfFunc:  func(format string, a ...any) { _, _ = fmt.Fprintf(env.out, format, a...) },
		WriteFunc:   func(p []byte) (int, error) { return env.out.Write(p) },
		ReadSecretFunc: func(prompt string) (string, error) {
			return env.secret, nil
		},
	}
	env.session = &SessionMock{
		CurrentFunc: func(ctx context.Context) (*storage.AuthData, error) {
			return &storage.AuthData{UserID: "u1", AccessToken: "token"}, nil
		},
	}
	env.syncer = &SyncerMock{}
	env.network = &netstatus.SourceMock{
		IsAvailableFunc: func(ctx context.Context) bool { return true },
	}
	lister := pendingListerFunc(func(ctx context.Context) ([]*models.LocalChange, error) {
		return env.pending, nil
	})

	env.cli = New(io, env.session, env.syncer, lister, env.network)
	return env
}

func TestRunLogin(t *testing.T) {
	expires := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)

	t.Run("token from flag", func(t *testing.T) {
		env := newTestEnv(t)
		env.session.LoginFunc = func(ctx context.Context, token string) (*storage.AuthData, error) {
			return &storage.AuthData{UserID: "u1", AccessToken: token, ExpiresAt: expires}, nil
		}

		require.NoError(t, env.cli.runLogin(context.Background(), "flag-token", ""))

		require.Len(t, env.session.LoginCalls(), 1)
		assert.Equal(t, "flag-token", env.session.LoginCalls()[0].Token)
		assert.Contains(t, env.out.String(), "User ID: u1")
		assert.Contains(t, env.out.String(), "2026-12-01T00:00:00Z")
	})

	t.Run("token from file", func(t *testing.T) {
		env := newTestEnv(t)
		env.session.LoginFunc = func(ctx context.Context, token string) (*storage.AuthData, error) {
			return &storage.AuthData{UserID: "u1", AccessToken: token}, nil
		}
		path := filepath.Join(t.TempDir(), "token")
		require.NoError(t, os.WriteFile(path, []byte("file-token\n"), 0o600))

		require.NoError(t, env.cli.runLogin(context.Background(), "", path))
		assert.Equal(t, "file-token", env.session.LoginCalls()[0].Token)
	})

	t.Run("token from prompt", func(t *testing.T) {
		env := newTestEnv(t)
		env.secret = "prompt-token"
		env.session.LoginFunc = func(ctx context.Context, token string) (*storage.AuthData, error) {
			return &storage.AuthData{UserID: "u1", AccessToken: token}, nil
		}

		require.NoError(t, env.cli.runLogin(context.Background(), "", ""))
		assert.Equal(t, "prompt-token", env.session.LoginCalls()[0].Token)
	})

	t.Run("empty token", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.cli.runLogin(context.Background(), "", "")
		require.Error(t, err)
		assert.Empty(t, env.session.LoginCalls())
	})

	t.Run("json output hides token", func(t *testing.T) {
		env := newTestEnv(t)
		env.cli.format = FormatJSON
		env.session.LoginFunc = func(ctx context.Context, token string) (*storage.AuthData, error) {
			return &storage.AuthData{UserID: "u1", AccessToken: token, ExpiresAt: expires}, nil
		}

		require.NoError(t, env.cli.runLogin(context.Background(), "secret-token", ""))
		assert.NotContains(t, env.out.String(), "secret-token")

		var out map[string]any
		require.NoError(t, json.Unmarshal(env.out.Bytes(), &out))
		assert.Equal(t, "u1", out["user_id"])
	})
}

func TestRunLogout(t *testing.T) {
	env := newTestEnv(t)
	env.session.LogoutFunc = func(ctx context.Context) error { return nil }

	require.NoError(t, env.cli.runLogout(context.Background()))
	assert.Len(t, env.session.LogoutCalls(), 1)

	env.session.LogoutFunc = func(ctx context.Context) error { return errors.New("disk failure") }
	assert.Error(t, env.cli.runLogout(context.Background()))
}

func TestRunRecord(t *testing.T) {
	recorded := func(env *testEnv) {
		env.syncer.RecordLocalChangeFunc = func(ctx context.Context, table models.Table, operation models.Operation, recordID string, data any, userID string) (*models.LocalChange, error) {
			return &models.LocalChange{ID: "c1", Table: table, Operation: operation, RecordID: recordID, UserID: userID}, nil
		}
	}

	t.Run("create with inline data", func(t *testing.T) {
		env := newTestEnv(t)
		recorded(env)

		err := env.cli.runRecord(context.Background(), "Events", "create", "E1", `{"id":"E1","title":"t"}`, "")
		require.NoError(t, err)

		calls := env.syncer.RecordLocalChangeCalls()
		require.Len(t, calls, 1)
		assert.Equal(t, models.TableEvents, calls[0].Table)
		assert.Equal(t, models.OperationCreate, calls[0].Operation)
		assert.Equal(t, "u1", calls[0].UserID)
		assert.JSONEq(t, `{"id":"E1","title":"t"}`, string(calls[0].Data.(json.RawMessage)))
		assert.Contains(t, env.out.String(), "change c1")
	})

	t.Run("delete without data", func(t *testing.T) {
		env := newTestEnv(t)
		recorded(env)

		require.NoError(t, env.cli.runRecord(context.Background(), "votes", "DELETE", "V1", "", ""))
		assert.Nil(t, env.syncer.RecordLocalChangeCalls()[0].Data)
	})

	t.Run("data from file", func(t *testing.T) {
		env := newTestEnv(t)
		recorded(env)
		path := filepath.Join(t.TempDir(), "vote.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"id":"V1"}`), 0o600))

		require.NoError(t, env.cli.runRecord(context.Background(), "votes", "UPDATE", "V1", "", path))
		assert.JSONEq(t, `{"id":"V1"}`, string(env.syncer.RecordLocalChangeCalls()[0].Data.(json.RawMessage)))
	})

	t.Run("not authenticated", func(t *testing.T) {
		env := newTestEnv(t)
		recorded(env)
		env.session.CurrentFunc = func(ctx context.Context) (*storage.AuthData, error) {
			return nil, storage.ErrAuthNotFound
		}

		err := env.cli.runRecord(context.Background(), "votes", "DELETE", "V1", "", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not authenticated")
		assert.Empty(t, env.syncer.RecordLocalChangeCalls())
	})

	t.Run("journal rejects change", func(t *testing.T) {
		env := newTestEnv(t)
		env.syncer.RecordLocalChangeFunc = func(ctx context.Context, table models.Table, operation models.Operation, recordID string, data any, userID string) (*models.LocalChange, error) {
			return nil, models.ErrUnknownTable
		}

		err := env.cli.runRecord(context.Background(), "slots", "CREATE", "S1", `{}`, "")
		assert.ErrorIs(t, err, models.ErrUnknownTable)
	})
}

func TestRunPending(t *testing.T) {
	t.Run("empty journal", func(t *testing.T) {
		env := newTestEnv(t)

		require.NoError(t, env.cli.runPending(context.Background()))
		assert.Contains(t, env.out.String(), "No pending changes")
	})

	t.Run("table output", func(t *testing.T) {
		env := newTestEnv(t)
		ts := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
		env.pending = []*models.LocalChange{
			{ID: "c1", Timestamp: ts, Table: models.TableEvents, Operation: models.OperationCreate, RecordID: "E1"},
			{ID: "c2", Timestamp: ts.Add(time.Second), Table: models.TableVotes, Operation: models.OperationDelete, RecordID: "V1"},
		}

		require.NoError(t, env.cli.runPending(context.Background()))
		out := env.out.String()
		assert.Contains(t, out, "CHANGE ID")
		assert.Contains(t, out, "c1")
		assert.Contains(t, out, "2026-05-01T12:00:01Z")
		assert.Contains(t, out, "Total: 2 pending change(s)")
	})

	t.Run("json output", func(t *testing.T) {
		env := newTestEnv(t)
		env.cli.format = FormatJSON
		env.pending = []*models.LocalChange{{ID: "c1", Table: models.TableEvents, Operation: models.OperationCreate, RecordID: "E1"}}

		require.NoError(t, env.cli.runPending(context.Background()))

		var changes []models.LocalChange
		require.NoError(t, json.Unmarshal(env.out.Bytes(), &changes))
		require.Len(t, changes, 1)
		assert.Equal(t, "c1", changes[0].ID)
	})
}

func TestRunSync(t *testing.T) {
	t.Run("summary with conflicts", func(t *testing.T) {
		env := newTestEnv(t)
		env.syncer.TriggerSyncFunc = func(ctx context.Context) (*clientsync.Result, error) {
			return &clientsync.Result{
				Response:       &api.SyncResponse{Success: true, AppliedChanges: 1},
				Submitted:      2,
				Acknowledged:   2,
				AppliedChanges: 1,
				Attempts:       2,
				Conflicts: []api.SyncConflict{
					{ChangeID: "c2", Table: "votes", RecordID: "V1", Resolution: api.ResolutionServerWins},
				},
			}, nil
		}

		require.NoError(t, env.cli.runSync(context.Background()))
		out := env.out.String()
		assert.Contains(t, out, "Sent to server:     2")
		assert.Contains(t, out, "Applied by server:  1")
		assert.Contains(t, out, "Attempts:           2")
		assert.Contains(t, out, "SERVER_WINS votes/V1: c2")
	})

	t.Run("nothing to sync", func(t *testing.T) {
		env := newTestEnv(t)
		env.syncer.TriggerSyncFunc = func(ctx context.Context) (*clientsync.Result, error) {
			return &clientsync.Result{Response: &api.SyncResponse{Success: true}}, nil
		}

		require.NoError(t, env.cli.runSync(context.Background()))
		assert.Contains(t, env.out.String(), "Nothing to synchronize")
	})

	tests := []struct {
		name    string
		err     error
		wantErr error
		wantMsg string
	}{
		{
			name:    "offline",
			err:     clientsync.ErrNetworkUnavailable,
			wantErr: clientsync.ErrNetworkUnavailable,
			wantMsg: "unreachable",
		},
		{
			name:    "no credentials",
			err:     clientsync.ErrMissingCredentials,
			wantMsg: "meetsync login",
		},
		{
			name:    "retries exhausted",
			err:     &clientsync.TransportError{Err: errors.New("connection refused"), Attempts: 4, Retries: 3},
			wantMsg: "after 4 attempts",
		},
		{
			name:    "server rejected batch",
			err:     clientsync.ErrServerRejected,
			wantErr: clientsync.ErrServerRejected,
			wantMsg: "synchronization failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.syncer.TriggerSyncFunc = func(ctx context.Context) (*clientsync.Result, error) {
				return nil, tt.err
			}

			err := env.cli.runSync(context.Background())
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestRunStatus(t *testing.T) {
	t.Run("authenticated with pending changes", func(t *testing.T) {
		env := newTestEnv(t)
		env.syncer.PendingCountFunc = func(ctx context.Context) (int, error) { return 3, nil }

		require.NoError(t, env.cli.runStatus(context.Background()))
		out := env.out.String()
		assert.Contains(t, out, "Authentication: u1")
		assert.Contains(t, out, "Server:         reachable")
		assert.Contains(t, out, "Pending sync: 3 change(s)")
	})

	t.Run("not authenticated and offline", func(t *testing.T) {
		env := newTestEnv(t)
		env.session.CurrentFunc = func(ctx context.Context) (*storage.AuthData, error) {
			return nil, storage.ErrAuthNotFound
		}
		env.network.IsAvailableFunc = func(ctx context.Context) bool { return false }
		env.syncer.PendingCountFunc = func(ctx context.Context) (int, error) { return 0, nil }

		require.NoError(t, env.cli.runStatus(context.Background()))
		out := env.out.String()
		assert.Contains(t, out, "not authenticated")
		assert.Contains(t, out, "unreachable")
		assert.Contains(t, out, "All changes synchronized")
	})

	t.Run("expired token json", func(t *testing.T) {
		env := newTestEnv(t)
		env.cli.format = FormatJSON
		env.session.CurrentFunc = func(ctx context.Context) (*storage.AuthData, error) {
			return &storage.AuthData{UserID: "u1", ExpiresAt: time.Now().Add(-time.Hour)}, nil
		}
		env.syncer.PendingCountFunc = func(ctx context.Context) (int, error) { return 1, nil }

		require.NoError(t, env.cli.runStatus(context.Background()))

		var report statusReport
		require.NoError(t, json.Unmarshal(env.out.Bytes(), &report))
		assert.True(t, report.Authenticated)
		assert.True(t, report.Expired)
		assert.True(t, report.Online)
		assert.Equal(t, 1, report.Pending)
	})

	t.Run("auth storage failure", func(t *testing.T) {
		env := newTestEnv(t)
		env.session.CurrentFunc = func(ctx context.Context) (*storage.AuthData, error) {
			return nil, storage.ErrStorageClosed
		}

		assert.ErrorIs(t, env.cli.runStatus(context.Background()), storage.ErrStorageClosed)
	})
}

func TestRoot(t *testing.T) {
	t.Run("invalid format", func(t *testing.T) {
		built := false
		root := NewRoot(func(ctx context.Context, opts *RootOptions) (*Cli, func() error, error) {
			built = true
			return nil, nil, nil
		}, "test")

		err := root.Execute(context.Background(), []string{"pending", "--format", "yaml"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid format")
		assert.False(t, built)
	})

	t.Run("version does not open storage", func(t *testing.T) {
		root := NewRoot(func(ctx context.Context, opts *RootOptions) (*Cli, func() error, error) {
			return nil, nil, errors.New("must not be called")
		}, "1.2.3")
		out := &bytes.Buffer{}
		root.Command().SetOut(out)

		require.NoError(t, root.Execute(context.Background(), []string{"version"}))
		assert.Contains(t, out.String(), "1.2.3")
	})

	t.Run("builder error", func(t *testing.T) {
		root := NewRoot(func(ctx context.Context, opts *RootOptions) (*Cli, func() error, error) {
			return nil, nil, errors.New("failed to open database")
		}, "test")

		err := root.Execute(context.Background(), []string{"pending"})
		assert.ErrorContains(t, err, "failed to open database")
	})

	t.Run("flags reach builder and close releases resources", func(t *testing.T) {
		env := newTestEnv(t)
		var gotOpts RootOptions
		closed := 0
		root := NewRoot(func(ctx context.Context, opts *RootOptions) (*Cli, func() error, error) {
			gotOpts = *opts
			return env.cli, func() error { closed++; return nil }, nil
		}, "test")

		err := root.Execute(context.Background(), []string{"pending", "--format", "json", "--db", "local.db", "--server", "http://example"})
		require.NoError(t, err)
		assert.Equal(t, "local.db", gotOpts.DBPath)
		assert.Equal(t, "http://example", gotOpts.ServerURL)
		assert.Equal(t, FormatJSON, env.cli.format)
		assert.Equal(t, "null\n", env.out.String())

		require.NoError(t, root.Close())
		require.NoError(t, root.Close())
		assert.Equal(t, 1, closed)
	})
}
