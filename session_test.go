package auth_test

import (
	"context"
	"testing"

	auth "github.com/goliatone/go-auth-tasks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionResolver(t *testing.T) {
	ctx := context.Background()

	t.Run("Validate never touches the store", func(t *testing.T) {
		tokens := new(MockTokenService)
		store := new(MockSessionStore)
		tokens.On("Validate", "tok").Return(auth.ErrTokenMalformed).Once()

		err := auth.NewSessionResolver(tokens, store).Validate("tok")
		assert.ErrorIs(t, err, auth.ErrTokenMalformed)
		store.AssertNotCalled(t, "GetByToken")
	})

	t.Run("Resolve returns the owner", func(t *testing.T) {
		store := new(MockSessionStore)
		store.On("GetByToken", ctx, "tok").Return(&auth.User{ID: 1, Username: "alice"}, nil).Once()

		user, err := auth.NewSessionResolver(new(MockTokenService), store).Resolve(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("Stale token is session not found", func(t *testing.T) {
		store := new(MockSessionStore)
		logger := &recordingLogger{}
		store.On("GetByToken", ctx, "stale").Return(nil, auth.ErrSessionNotFound).Once()

		_, err := auth.NewSessionResolver(new(MockTokenService), store).
			WithLogger(logger).
			Resolve(ctx, "stale")
		assert.ErrorIs(t, err, auth.ErrSessionNotFound)
		assert.True(t, logger.has("debug", "session lookup failed"))
	})

	t.Run("SessionFromToken stops at validation", func(t *testing.T) {
		tokens := new(MockTokenService)
		store := new(MockSessionStore)
		tokens.On("Validate", "bad").Return(auth.ErrTokenMalformed).Once()

		_, err := auth.NewSessionResolver(tokens, store).SessionFromToken(ctx, "bad")
		assert.ErrorIs(t, err, auth.ErrTokenMalformed)
		store.AssertNotCalled(t, "GetByToken")
	})

	t.Run("SessionFromToken against a real store", func(t *testing.T) {
		db := setupTestDB(t)
		users := auth.NewUsersRepository(db)
		tokens := auth.NewTokenService([]byte("key"), "iss", nil)

		token, err := tokens.Issue()
		require.NoError(t, err)
		seeded := seedUser(t, users, "alice", token)

		resolver := auth.NewSessionResolver(tokens, users)

		user, err := resolver.SessionFromToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, user.ID)

		orphan, err := tokens.Issue()
		require.NoError(t, err)

		_, err = resolver.SessionFromToken(ctx, orphan)
		assert.ErrorIs(t, err, auth.ErrSessionNotFound)
	})
}
