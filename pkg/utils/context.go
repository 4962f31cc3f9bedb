package utils

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	tokenKey
)

// SetUserContext records the authenticated user on ctx.
func SetUserContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext reports the authenticated user. Anonymous requests
// and a nil id report false.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// ViewerFromContext returns the authenticated user or uuid.Nil for anonymous callers.
func ViewerFromContext(ctx context.Context) uuid.UUID {
	userID, _ := GetUserIDFromContext(ctx)
	return userID
}

func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok && token != ""
}
