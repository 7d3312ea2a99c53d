package auth

import (
	"context"

	"github.com/goliatone/go-router"
)

var userCtxKey = &contextKey{"user"}

type contextKey struct {
	name string
}

// WithContext sets the User in the given context
func WithContext(r context.Context, user *User) context.Context {
	return context.WithValue(r, userCtxKey, user)
}

// FromContext finds the user from the context.
func FromContext(ctx context.Context) (*User, bool) {
	raw, ok := ctx.Value(userCtxKey).(*User)
	return raw, ok && raw != nil
}

// GetRouterUser extracts the user attached by the bearer middleware. It
// checks the request locals first and falls back to the user context.
func GetRouterUser(ctx router.Context, key string) (*User, bool) {
	if key == "" {
		key = "user"
	}
	if user, ok := ctx.Locals(key).(*User); ok && user != nil {
		return user, true
	}
	return FromContext(ctx.Context())
}
