package sync

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/meetsync/internal/client/auth"
	"github.com/iudanet/meetsync/internal/client/journal"
	"github.com/iudanet/meetsync/internal/client/netstatus"
	"github.com/iudanet/meetsync/internal/client/storage/boltdb"
	"github.com/iudanet/meetsync/internal/models"
	"github.com/iudanet/meetsync/pkg/api"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestJournal создает журнал поверх временного bbolt файла
func newTestJournal(t *testing.T) *journal.Journal {
	t.Helper()
	ctx := context.Background()
	store, err := boltdb.New(ctx, filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	j, err := journal.New(ctx, store, nil, setupTestLogger())
	require.NoError(t, err)
	return j
}

func online(available bool) *netstatus.SourceMock {
	return &netstatus.SourceMock{
		IsAvailableFunc: func(ctx context.Context) bool { return available },
	}
}

func withToken(token string) *auth.TokenProviderMock {
	return &auth.TokenProviderMock{
		CurrentTokenFunc: func(ctx context.Context) (string, error) { return token, nil },
	}
}

func testConfig(maxRetries int) Config {
	return Config{BaseDelay: time.Millisecond, MaxRetries: maxRetries}
}

// successTransport подтверждает все изменения без конфликтов
func successTransport() *TransportMock {
	return &TransportMock{
		SyncFunc: func(ctx context.Context, accessToken string, req api.SyncRequest) (*api.SyncResponse, error) {
			return &api.SyncResponse{
				Success:         true,
				AppliedChanges:  len(req.Changes),
				Conflicts:       []api.SyncConflict{},
				ServerTimestamp: time.Now().UTC(),
			}, nil
		},
	}
}

func recordEvent(t *testing.T, o *Orchestrator, id string) *models.LocalChange {
	t.Helper()
	change, err := o.RecordLocalChange(context.Background(), models.TableEvents, models.OperationCreate, id,
		&models.Event{ID: id, OwnerID: "user-1", Title: "Board games"}, "user-1")
	require.NoError(t, err)
	return change
}

func TestTriggerSync_NetworkUnavailable(t *testing.T) {
	transport := successTransport()
	tokens := withToken("token")
	o := NewOrchestrator(newTestJournal(t), transport, online(false), tokens, testConfig(3), setupTestLogger())
	recordEvent(t, o, "E1")

	result, err := o.TriggerSync(context.Background())

	assert.ErrorIs(t, err, ErrNetworkUnavailable)
	assert.Nil(t, result)
	assert.Empty(t, transport.SyncCalls(), "No network call expected")
	assert.Empty(t, tokens.CurrentTokenCalls(), "Network is checked before credentials")

	status := o.Status()
	assert.Equal(t, StateError, status.State)
	assert.Equal(t, 1, status.Pending)
	assert.Contains(t, status.LastError, "network unavailable")
}

func TestTriggerSync_MissingCredentials(t *testing.T) {
	transport := successTransport()
	o := NewOrchestrator(newTestJournal(t), transport, online(true), withToken(""), testConfig(3), setupTestLogger())
	recordEvent(t, o, "E1")

	_, err := o.TriggerSync(context.Background())

	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.Empty(t, transport.SyncCalls())
	assert.Equal(t, StateError, o.Status().State)
}

func TestTriggerSync_TokenProviderError(t *testing.T) {
	boom := errors.New("storage closed")
	tokens := &auth.TokenProviderMock{
		CurrentTokenFunc: func(ctx context.Context) (string, error) { return "", boom },
	}
	transport := successTransport()
	o := NewOrchestrator(newTestJournal(t), transport, online(true), tokens, testConfig(3), setupTestLogger())

	_, err := o.TriggerSync(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrMissingCredentials)
	assert.Empty(t, transport.SyncCalls())
}

func TestTriggerSync_EmptyJournal(t *testing.T) {
	transport := successTransport()
	o := NewOrchestrator(newTestJournal(t), transport, online(true), withToken("token"), testConfig(3), setupTestLogger())

	result, err := o.TriggerSync(context.Background())

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Response.Success)
	assert.Zero(t, result.AppliedChanges)
	assert.Zero(t, result.Attempts)
	assert.Empty(t, transport.SyncCalls())
	assert.Equal(t, StateIdle, o.Status().State)
}

func TestTriggerSync_SingleCreate(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t)
	transport := &TransportMock{
		SyncFunc: func(ctx context.Context, accessToken string, req api.SyncRequest) (*api.SyncResponse, error) {
			return &api.SyncResponse{Success: true, AppliedChanges: 1, Conflicts: []api.SyncConflict{}}, nil
		},
	}
	o := NewOrchestrator(j, transport, online(true), withToken("token-123"), testConfig(3), setupTestLogger())
	change := recordEvent(t, o, "E1")

	result, err := o.TriggerSync(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, result.AppliedChanges)
	assert.Equal(t, 1, result.Acknowledged)
	assert.Equal(t, 1, result.Attempts)
	assert.Empty(t, result.Conflicts)

	calls := transport.SyncCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "token-123", calls[0].AccessToken)
	require.Len(t, calls[0].Req.Changes, 1)
	sent := calls[0].Req.Changes[0]
	assert.Equal(t, change.ID, sent.ID)
	assert.Equal(t, "events", sent.Table)
	assert.Equal(t, "CREATE", sent.Operation)
	assert.Equal(t, "E1", sent.RecordID)
	assert.Equal(t, "user-1", sent.UserID)

	count, err := j.PendingCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "Journal must be empty after successful sync")

	status := o.Status()
	assert.Equal(t, StateIdle, status.State)
	assert.Zero(t, status.Pending)
	assert.Empty(t, status.LastError)
}

func TestTriggerSync_PreservesJournalOrder(t *testing.T) {
	transport := successTransport()
	o := NewOrchestrator(newTestJournal(t), transport, online(true), withToken("token"), testConfig(0), setupTestLogger())

	var ids []string
	for _, id := range []string{"E3", "E1", "E2"} {
		ids = append(ids, recordEvent(t, o, id).ID)
	}

	_, err := o.TriggerSync(context.Background())
	require.NoError(t, err)

	calls := transport.SyncCalls()
	require.Len(t, calls, 1)
	require.Len(t, calls[0].Req.Changes, 3)
	for i, change := range calls[0].Req.Changes {
		assert.Equal(t, ids[i], change.ID)
	}
}

func TestTriggerSync_RetryTermination(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t)
	transportErr := errors.New("connection refused")
	transport := &TransportMock{
		SyncFunc: func(ctx context.Context, accessToken string, req api.SyncRequest) (*api.SyncResponse, error) {
			return nil, transportErr
		},
	}

	const maxRetries = 3
	o := NewOrchestrator(j, transport, online(true), withToken("token"), testConfig(maxRetries), setupTestLogger())
	recordEvent(t, o, "E1")
	recordEvent(t, o, "E2")

	result, err := o.TriggerSync(ctx)

	require.Error(t, err)
	assert.Len(t, transport.SyncCalls(), maxRetries+1)

	var terr *TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, maxRetries+1, terr.Attempts)
	assert.Equal(t, maxRetries, terr.Retries)
	assert.ErrorIs(t, err, transportErr)
	assert.Equal(t, maxRetries+1, result.Attempts)

	// Журнал не изменился
	count, err := j.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.Equal(t, StateError, o.Status().State)
	assert.Equal(t, 2, o.Status().Pending)
}

func TestTriggerSync_RetryRecovery(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t)

	var calls atomic.Int32
	transport := &TransportMock{
		SyncFunc: func(ctx context.Context, accessToken string, req api.SyncRequest) (*api.SyncResponse, error) {
			if calls.Add(1) <= 2 {
				return nil, errors.New("timeout")
			}
			return &api.SyncResponse{Success: true, AppliedChanges: len(req.Changes), Conflicts: []api.SyncConflict{}}, nil
		},
	}

	o := NewOrchestrator(j, transport, online(true), withToken("token"), testConfig(3), setupTestLogger())
	recordEvent(t, o, "E1")

	result, err := o.TriggerSync(ctx)

	require.NoError(t, err)
	assert.Equal(t, 3, result.Attempts)
	assert.Len(t, transport.SyncCalls(), 3)

	count, err := j.PendingCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestTriggerSync_BackoffDoubles(t *testing.T) {
	var stamps []time.Time
	transport := &TransportMock{
		SyncFunc: func(ctx context.Context, accessToken string, req api.SyncRequest) (*api.SyncResponse, error) {
			stamps = append(stamps, time.Now())
			return nil, errors.New("unreachable")
		},
	}

	base := 20 * time.Millisecond
	o := NewOrchestrator(newTestJournal(t), transport, online(true), withToken("token"),
		Config{BaseDelay: base, MaxRetries: 2}, setupTestLogger())
	recordEvent(t, o, "E1")

	_, err := o.TriggerSync(context.Background())
	require.Error(t, err)
	require.Len(t, stamps, 3)

	assert.GreaterOrEqual(t, stamps[1].Sub(stamps[0]), base)
	assert.GreaterOrEqual(t, stamps[2].Sub(stamps[1]), 2*base)
}

func TestTriggerSync_ConflictsAreAcknowledged(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t)
	o := NewOrchestrator(j, nil, online(true), withToken("token"), testConfig(0), setupTestLogger())

	change, err := o.RecordLocalChange(ctx, models.TableParticipants, models.OperationUpdate, "P1",
		json.RawMessage(`{"id":"P1","event_id":"E1","name":"Alice","status":"declined"}`), "user-1")
	require.NoError(t, err)

	serverData := json.RawMessage(`{"id":"P1","event_id":"E1","name":"Alice","status":"accepted"}`)
	o.transport = &TransportMock{
		SyncFunc: func(ctx context.Context, accessToken string, req api.SyncRequest) (*api.SyncResponse, error) {
			return &api.SyncResponse{
				Success:        true,
				AppliedChanges: 0,
				Conflicts: []api.SyncConflict{{
					ChangeID:   change.ID,
					Table:      "participants",
					RecordID:   "P1",
					Resolution: api.ResolutionServerWins,
					ClientData: change.Data,
					ServerData: serverData,
				}},
			}, nil
		},
	}

	result, err := o.TriggerSync(ctx)

	require.NoError(t, err)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, api.ResolutionServerWins, result.Conflicts[0].Resolution)
	assert.JSONEq(t, string(serverData), string(result.Conflicts[0].ServerData))
	assert.Zero(t, result.AppliedChanges)
	assert.Equal(t, 1, result.Acknowledged)

	count, err := j.PendingCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "Conflicting change must be dropped from the journal")
	assert.Equal(t, StateIdle, o.Status().State)
}

func TestTriggerSync_ServerReportedFailure(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t)
	transport := &TransportMock{
		SyncFunc: func(ctx context.Context, accessToken string, req api.SyncRequest) (*api.SyncResponse, error) {
			return &api.SyncResponse{Success: false, AppliedChanges: 1, Message: "database is locked"}, nil
		},
	}
	o := NewOrchestrator(j, transport, online(true), withToken("token"), testConfig(3), setupTestLogger())
	recordEvent(t, o, "E1")
	recordEvent(t, o, "E2")

	result, err := o.TriggerSync(ctx)

	assert.ErrorIs(t, err, ErrServerRejected)
	assert.Contains(t, err.Error(), "database is locked")
	require.NotNil(t, result)
	assert.Zero(t, result.Acknowledged)
	assert.Len(t, transport.SyncCalls(), 1, "Delivered response is not retried")

	count, err := j.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, StateError, o.Status().State)
}

func TestTriggerSync_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	transport := &TransportMock{
		SyncFunc: func(ctx context.Context, accessToken string, req api.SyncRequest) (*api.SyncResponse, error) {
			cancel()
			return nil, errors.New("unreachable")
		},
	}
	o := NewOrchestrator(newTestJournal(t), transport, online(true), withToken("token"),
		Config{BaseDelay: time.Hour, MaxRetries: 5}, setupTestLogger())
	recordEvent(t, o, "E1")

	_, err := o.TriggerSync(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	var terr *TransportError
	assert.False(t, errors.As(err, &terr))
	assert.Len(t, transport.SyncCalls(), 1)
}

func TestTriggerSync_StatusTransitions(t *testing.T) {
	o := NewOrchestrator(newTestJournal(t), nil, online(true), withToken("token"), testConfig(0), setupTestLogger())
	recordEvent(t, o, "E1")

	updates, cancel := o.Subscribe()
	defer cancel()
	assert.Equal(t, StateIdle, (<-updates).State)

	var during Status
	o.transport = &TransportMock{
		SyncFunc: func(ctx context.Context, accessToken string, req api.SyncRequest) (*api.SyncResponse, error) {
			during = <-updates
			return &api.SyncResponse{Success: true, AppliedChanges: 1}, nil
		},
	}

	_, err := o.TriggerSync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateSyncing, during.State)
	assert.Equal(t, 1, during.Pending)

	after := <-updates
	assert.Equal(t, StateIdle, after.State)
	assert.Zero(t, after.Pending)
}

func TestTriggerSync_SingleFlight(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32
	release := make(chan struct{})
	transport := &TransportMock{
		SyncFunc: func(ctx context.Context, accessToken string, req api.SyncRequest) (*api.SyncResponse, error) {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				cur := maxInFlight.Load()
				if n <= cur || maxInFlight.CompareAndSwap(cur, n) {
					break
				}
			}
			<-release
			return &api.SyncResponse{Success: true, AppliedChanges: len(req.Changes)}, nil
		},
	}
	o := NewOrchestrator(newTestJournal(t), transport, online(true), withToken("token"), testConfig(0), setupTestLogger())
	recordEvent(t, o, "E1")

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := o.TriggerSync(context.Background())
			errs <- err
		}()
	}

	// Даем обоим вызовам стартовать, затем отпускаем транспорт
	time.Sleep(50 * time.Millisecond)
	close(release)

	require.NoError(t, <-errs)
	require.NoError(t, <-errs)
	assert.Equal(t, int32(1), maxInFlight.Load(), "Only one sync cycle may run at a time")
	// Второй цикл видит пустой журнал и не обращается к серверу
	assert.Len(t, transport.SyncCalls(), 1)
}

func TestTriggerSync_WaitingCallerHonoursContext(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	transport := &TransportMock{
		SyncFunc: func(ctx context.Context, accessToken string, req api.SyncRequest) (*api.SyncResponse, error) {
			close(started)
			<-release
			return &api.SyncResponse{Success: true}, nil
		},
	}
	o := NewOrchestrator(newTestJournal(t), transport, online(true), withToken("token"), testConfig(0), setupTestLogger())
	recordEvent(t, o, "E1")

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = o.TriggerSync(context.Background())
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := o.TriggerSync(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	<-done
}

func TestRecordLocalChange_UpdatesPendingCount(t *testing.T) {
	o := NewOrchestrator(newTestJournal(t), successTransport(), online(true), withToken("token"), testConfig(0), setupTestLogger())

	recordEvent(t, o, "E1")
	recordEvent(t, o, "E2")

	assert.Equal(t, 2, o.Status().Pending)
	assert.Equal(t, StateIdle, o.Status().State)

	count, err := o.PendingCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = o.RecordLocalChange(context.Background(), models.Table("slots"), models.OperationCreate, "S1", nil, "user-1")
	assert.ErrorIs(t, err, journal.ErrUnknownTable)
	assert.Equal(t, 2, o.Status().Pending)
}

func TestNewOrchestrator_NormalizesConfig(t *testing.T) {
	o := NewOrchestrator(&JournalMock{}, &TransportMock{}, online(true), withToken("t"),
		Config{BaseDelay: 0, MaxRetries: -1}, setupTestLogger())

	assert.Equal(t, DefaultBaseDelay, o.cfg.BaseDelay)
	assert.Zero(t, o.cfg.MaxRetries)
}

func TestTriggerSync_AcknowledgeError(t *testing.T) {
	boom := errors.New("disk full")
	j := &JournalMock{
		PendingFunc: func(ctx context.Context) ([]*models.LocalChange, error) {
			return []*models.LocalChange{{ID: "c1", Table: models.TableEvents, Operation: models.OperationDelete, RecordID: "E1", UserID: "u"}}, nil
		},
		AcknowledgeFunc: func(ctx context.Context, ids ...string) (int, error) {
			return 0, boom
		},
		PendingCountFunc: func(ctx context.Context) (int, error) {
			return 1, nil
		},
	}
	o := NewOrchestrator(j, successTransport(), online(true), withToken("token"), testConfig(0), setupTestLogger())

	_, err := o.TriggerSync(context.Background())

	assert.ErrorIs(t, err, boom)
	require.Len(t, j.AcknowledgeCalls(), 1)
	assert.Equal(t, []string{"c1"}, j.AcknowledgeCalls()[0].Ids)
	assert.Equal(t, StateError, o.Status().State)
}

func TestRecordLocalChange_DoesNotOverwriteFinishedSync(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t)

	var gateNextCount atomic.Bool
	countEntered := make(chan struct{})
	countRelease := make(chan struct{})
	journalMock := &JournalMock{
		RecordFunc: func(ctx context.Context, table models.Table, operation models.Operation, recordID string, data any, userID string) (*models.LocalChange, error) {
			change, err := j.Record(ctx, table, operation, recordID, data, userID)
			if recordID == "E2" {
				gateNextCount.Store(true)
			}
			return change, err
		},
		PendingFunc:     j.Pending,
		AcknowledgeFunc: j.Acknowledge,
		PendingCountFunc: func(ctx context.Context) (int, error) {
			// Подсчет после записи E2 задерживается до конца синхронизации
			if gateNextCount.CompareAndSwap(true, false) {
				close(countEntered)
				<-countRelease
			}
			return j.PendingCount(ctx)
		},
	}

	started := make(chan struct{})
	release := make(chan struct{})
	transport := &TransportMock{
		SyncFunc: func(ctx context.Context, accessToken string, req api.SyncRequest) (*api.SyncResponse, error) {
			close(started)
			<-release
			return &api.SyncResponse{Success: true, AppliedChanges: len(req.Changes), Conflicts: []api.SyncConflict{}}, nil
		},
	}
	o := NewOrchestrator(journalMock, transport, online(true), withToken("token"), testConfig(0), setupTestLogger())
	recordEvent(t, o, "E1")

	syncDone := make(chan error, 1)
	go func() {
		_, err := o.TriggerSync(ctx)
		syncDone <- err
	}()
	<-started
	require.Equal(t, StateSyncing, o.Status().State)

	recordDone := make(chan error, 1)
	go func() {
		_, err := o.RecordLocalChange(ctx, models.TableEvents, models.OperationCreate, "E2",
			&models.Event{ID: "E2", OwnerID: "user-1", Title: "Chess"}, "user-1")
		recordDone <- err
	}()
	<-countEntered

	close(release)
	require.NoError(t, <-syncDone)
	require.Equal(t, StateIdle, o.Status().State)

	close(countRelease)
	require.NoError(t, <-recordDone)

	status := o.Status()
	assert.Equal(t, StateIdle, status.State, "Recording a change must not revive a finished sync state")
	assert.Equal(t, 1, status.Pending)
}
