package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken indicates that token cannot be parsed or has no user_id claim
var ErrInvalidToken = errors.New("invalid access token")

// Claims представляет claims access token, которые нужны клиенту
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// ParseToken извлекает claims из JWT без проверки подписи.
// Подпись проверяет сервер, клиенту нужен только user_id и срок действия.
func ParseToken(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing user_id claim", ErrInvalidToken)
	}
	return claims, nil
}

// UserIDFromToken возвращает user_id из access token
func UserIDFromToken(token string) (string, error) {
	claims, err := ParseToken(token)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// expiresAt возвращает срок действия токена (нулевое время, если exp не задан)
func (c *Claims) expiresAt() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
