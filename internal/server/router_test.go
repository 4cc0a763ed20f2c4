package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/meetsync/internal/server/handlers"
	"github.com/iudanet/meetsync/internal/server/metrics"
	"github.com/iudanet/meetsync/internal/server/middleware"
	"github.com/iudanet/meetsync/internal/server/notify"
	"github.com/iudanet/meetsync/internal/server/storage/sqlite"
	serversync "github.com/iudanet/meetsync/internal/server/sync"
	"github.com/iudanet/meetsync/pkg/api"
)

type routerEnv struct {
	server *httptest.Server
	jwt    handlers.JWTConfig
}

func newRouterEnv(t *testing.T, rate int) *routerEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	reg := prometheus.NewRegistry()
	m := metrics.NewSync(reg)

	limiter := middleware.NewMemoryLimiter(rate, time.Minute)
	t.Cleanup(limiter.Stop)

	jwtCfg := handlers.JWTConfig{
		Secret:         []byte("router-test-secret-at-least-32-bytes"),
		AccessTokenTTL: time.Hour,
	}

	srv := httptest.NewServer(NewRouter(Options{
		Logger:   logger,
		Sync:     serversync.NewService(store, notify.Nop{}, m, logger),
		Storage:  store,
		Limiter:  limiter,
		Metrics:  m,
		Gatherer: reg,
		JWT:      jwtCfg,
		Version:  "test",
		MaxBatch: 10,
	}))
	t.Cleanup(srv.Close)

	return &routerEnv{server: srv, jwt: jwtCfg}
}

func (e *routerEnv) postSync(t *testing.T, userID string, req api.SyncRequest) *http.Response {
	t.Helper()

	body, err := json.Marshal(req)
	require.NoError(t, err)

	httpReq, err := http.NewRequest(http.MethodPost, e.server.URL+PathSync, bytes.NewReader(body))
	require.NoError(t, err)
	httpReq.Header.Set("Content-Type", "application/json")

	if userID != "" {
		token, _, err := handlers.GenerateAccessToken(e.jwt, userID)
		require.NoError(t, err)
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(httpReq)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func createEventChange(id, recordID string) api.Change {
	return api.Change{
		ID:        id,
		Table:     "events",
		Operation: "CREATE",
		RecordID:  recordID,
		UserID:    "u1",
		Timestamp: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
		Data:      json.RawMessage(`{"id":"` + recordID + `","owner_id":"u1","title":"Board games"}`),
	}
}

func TestRouter_SyncEndToEnd(t *testing.T) {
	env := newRouterEnv(t, 100)

	resp := env.postSync(t, "u1", api.SyncRequest{Changes: []api.Change{createEventChange("c1", "E1")}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var syncResp api.SyncResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&syncResp))
	assert.True(t, syncResp.Success)
	assert.Equal(t, 1, syncResp.AppliedChanges)
	assert.Empty(t, syncResp.Conflicts)

	// Повтор пакета ничего не меняет
	resp = env.postSync(t, "u1", api.SyncRequest{Changes: []api.Change{createEventChange("c1", "E1")}})
	syncResp = api.SyncResponse{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&syncResp))
	assert.True(t, syncResp.Success)
	assert.Equal(t, 0, syncResp.AppliedChanges)

	// Метрики доступны без авторизации
	metricsResp, err := http.Get(env.server.URL + PathMetrics)
	require.NoError(t, err)
	defer func() { _ = metricsResp.Body.Close() }()
	body, err := io.ReadAll(metricsResp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `meetsync_sync_changes_total{operation="CREATE",outcome="applied",table="events"} 1`)
}

func TestRouter_SyncRequiresToken(t *testing.T) {
	env := newRouterEnv(t, 100)

	resp := env.postSync(t, "", api.SyncRequest{Changes: []api.Change{createEventChange("c1", "E1")}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_BatchLimit(t *testing.T) {
	env := newRouterEnv(t, 100)

	changes := make([]api.Change, 11)
	for i := range changes {
		changes[i] = createEventChange("c", "E")
	}

	resp := env.postSync(t, "u1", api.SyncRequest{Changes: changes})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_RateLimitPerUser(t *testing.T) {
	env := newRouterEnv(t, 1)

	req := api.SyncRequest{Changes: []api.Change{}}

	assert.Equal(t, http.StatusOK, env.postSync(t, "u1", req).StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, env.postSync(t, "u1", req).StatusCode)
	assert.Equal(t, http.StatusOK, env.postSync(t, "u2", req).StatusCode)
}

func TestRouter_Health(t *testing.T) {
	env := newRouterEnv(t, 100)

	resp, err := http.Get(env.server.URL + PathHealth)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health api.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, handlers.StatusOK, health.Status)
	assert.Equal(t, "test", health.Version)
}
