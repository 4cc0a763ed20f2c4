package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/meetsync/internal/client/storage"
)

// Store хранит access token в локальном хранилище клиента и
// реализует TokenProvider для оркестратора синхронизации.
type Store struct {
	storage storage.AuthStorage
	logger  *slog.Logger
	now     func() time.Time
}

// Compile-time check that Store implements TokenProvider
var _ TokenProvider = (*Store)(nil)

// NewStore creates a new token store
func NewStore(storage storage.AuthStorage, logger *slog.Logger) *Store {
	return &Store{
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
}

// Login сохраняет токен, выданный сервисом аутентификации.
// user_id и срок действия берутся из claims токена.
func (s *Store) Login(ctx context.Context, token string) (*storage.AuthData, error) {
	claims, err := ParseToken(token)
	if err != nil {
		return nil, err
	}

	auth := &storage.AuthData{
		UserID:      claims.UserID,
		AccessToken: token,
		SavedAt:     s.now().UTC(),
		ExpiresAt:   claims.expiresAt(),
	}

	if auth.Expired(s.now()) {
		return nil, fmt.Errorf("%w: token expired at %s", ErrInvalidToken, auth.ExpiresAt.Format(time.RFC3339))
	}

	if err := s.storage.SaveAuth(ctx, auth); err != nil {
		return nil, fmt.Errorf("failed to save auth data: %w", err)
	}

	s.logger.Info("Access token saved", "user_id", auth.UserID)
	return auth, nil
}

// Logout удаляет сохраненный токен. Повторный вызов не является ошибкой.
func (s *Store) Logout(ctx context.Context) error {
	err := s.storage.DeleteAuth(ctx)
	if err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return fmt.Errorf("failed to delete auth data: %w", err)
	}
	return nil
}

// Current возвращает сохраненные данные аутентификации.
// Возвращает storage.ErrAuthNotFound, если пользователь не вошел.
func (s *Store) Current(ctx context.Context) (*storage.AuthData, error) {
	return s.storage.GetAuth(ctx)
}

// CurrentToken возвращает действующий access token или пустую строку,
// если токена нет или срок его действия истек.
func (s *Store) CurrentToken(ctx context.Context) (string, error) {
	auth, err := s.storage.GetAuth(ctx)
	if errors.Is(err, storage.ErrAuthNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get auth data: %w", err)
	}

	if auth.Expired(s.now()) {
		s.logger.Warn("Access token expired", "user_id", auth.UserID, "expires_at", auth.ExpiresAt)
		return "", nil
	}

	return auth.AccessToken, nil
}

// UserID возвращает идентификатор вошедшего пользователя
func (s *Store) UserID(ctx context.Context) (string, error) {
	auth, err := s.storage.GetAuth(ctx)
	if err != nil {
		return "", err
	}
	return auth.UserID, nil
}
