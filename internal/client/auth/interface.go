package auth

import (
	"context"
)

//go:generate moq -out tokenprovider_mock.go . TokenProvider

// TokenProvider выдает текущий access token пользователя.
// Пустая строка без ошибки означает, что пользователь не вошел в систему.
type TokenProvider interface {
	CurrentToken(ctx context.Context) (string, error)
}
