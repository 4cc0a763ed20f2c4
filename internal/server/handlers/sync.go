package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/iudanet/meetsync/pkg/api"
)

//go:generate moq -out syncprocessor_mock.go . SyncProcessor

// DefaultMaxBodyBytes ограничение на размер тела запроса синхронизации
const DefaultMaxBodyBytes = 8 << 20

// SyncProcessor applies a batch of client changes on behalf of the caller
type SyncProcessor interface {
	ProcessSyncChanges(ctx context.Context, req api.SyncRequest, callerUserID string) api.SyncResponse
}

// SyncHandler handles synchronization requests
type SyncHandler struct {
	logger   *slog.Logger
	service  SyncProcessor
	maxBatch int
}

// NewSyncHandler creates a new sync handler. maxBatch <= 0 отключает ограничение.
func NewSyncHandler(logger *slog.Logger, service SyncProcessor, maxBatch int) *SyncHandler {
	return &SyncHandler{
		logger:   logger,
		service:  service,
		maxBatch: maxBatch,
	}
}

// HandleSync обрабатывает POST /api/v1/sync
func (h *SyncHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	// Получаем user_id из контекста (установлен AuthMiddleware)
	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("User ID not found in context")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.SyncRequest
	body := http.MaxBytesReader(w, r.Body, DefaultMaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.logger.Warn("Sync request body too large", "user_id", userID, "limit", maxErr.Limit)
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		h.logger.Warn("Failed to decode sync request", "user_id", userID, "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if h.maxBatch > 0 && len(req.Changes) > h.maxBatch {
		h.logger.Warn("Sync batch too large", "user_id", userID, "changes", len(req.Changes), "limit", h.maxBatch)
		http.Error(w, fmt.Sprintf("Too many changes in batch: %d (max %d)", len(req.Changes), h.maxBatch),
			http.StatusBadRequest)
		return
	}

	h.logger.Info("POST sync request", "user_id", userID, "changes_count", len(req.Changes))

	resp := h.service.ProcessSyncChanges(ctx, req, userID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}

	h.logger.Info("POST sync completed",
		"user_id", userID,
		"success", resp.Success,
		"applied", resp.AppliedChanges,
		"conflicts", len(resp.Conflicts))
}
