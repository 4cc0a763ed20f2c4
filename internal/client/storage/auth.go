package storage

import (
	"context"
	"time"
)

// AuthStorage defines interface for storing authentication data on client
type AuthStorage interface {
	// SaveAuth stores authentication data, replacing previous one
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves stored authentication data
	// Returns ErrAuthNotFound if no auth data exists
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes stored authentication data (logout)
	// Returns ErrAuthNotFound if no auth data exists
	DeleteAuth(ctx context.Context) error
}

// AuthData represents authentication information in storage.
// Токен выдается внешним сервисом аутентификации, клиент хранит его как есть.
type AuthData struct {
	SavedAt     time.Time `json:"saved_at"`
	ExpiresAt   time.Time `json:"expires_at,omitzero"`
	UserID      string    `json:"user_id"`
	AccessToken string    `json:"access_token"`
}

// Expired проверяет, истек ли токен (нулевой ExpiresAt означает бессрочный токен)
func (a *AuthData) Expired(now time.Time) bool {
	return !a.ExpiresAt.IsZero() && now.After(a.ExpiresAt)
}
