package auth

import (
	"context"
)

// SessionResolver turns a presented bearer token into the user that owns it.
// A correctly signed token is only a live session while it still equals the
// token stored for its user.
type SessionResolver struct {
	tokens TokenService
	store  SessionStore
	logger Logger
}

// NewSessionResolver returns a resolver backed by the given token service and store
func NewSessionResolver(tokens TokenService, store SessionStore) *SessionResolver {
	return &SessionResolver{
		tokens: tokens,
		store:  store,
		logger: DefaultLogger(),
	}
}

// WithLogger sets the logger
func (s *SessionResolver) WithLogger(logger Logger) *SessionResolver {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Validate is the integrity step, it never touches the store
func (s *SessionResolver) Validate(token string) error {
	return s.tokens.Validate(token)
}

// Resolve loads the user whose current token equals token
func (s *SessionResolver) Resolve(ctx context.Context, token string) (*User, error) {
	user, err := s.store.GetByToken(ctx, token)
	if err != nil {
		s.logger.Debug("session lookup failed", "error", err)
		return nil, err
	}
	return user, nil
}

// SessionFromToken runs both steps
func (s *SessionResolver) SessionFromToken(ctx context.Context, token string) (*User, error) {
	if err := s.Validate(token); err != nil {
		return nil, err
	}
	return s.Resolve(ctx, token)
}
