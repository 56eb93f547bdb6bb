package auth

import (
	"context"
	"errors"
)

// UserContext is the verified identity of the caller
type UserContext struct {
	UserID   string   `json:"sub"`
	Email    string   `json:"email"`
	Username string   `json:"username"`
	Groups   []string `json:"groups"`
}

type contextKey string

const userContextKey contextKey = "user"

var ErrNoUser = errors.New("user not found in context")

// SetUserInContext adds user to context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext extracts the user placed by the auth middleware
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil || user.UserID == "" {
		return nil, ErrNoUser
	}
	return user, nil
}
