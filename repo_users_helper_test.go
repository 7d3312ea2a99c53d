package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	auth "github.com/goliatone/go-auth-tasks"
	"github.com/goliatone/go-auth-tasks/config"
	"github.com/goliatone/go-auth-tasks/storage"
)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	client, err := storage.Open(config.Persistence{
		DSN:               ":memory:",
		PingTimeout:       time.Second,
		MigrationsEnabled: true,
	})
	require.NoError(t, err)

	db := client.DB()
	t.Cleanup(func() {
		_ = db.Close()
	})

	require.NoError(t, storage.RegisterMigrations(client, "auth", auth.GetMigrationsFS()))

	_, err = storage.Migrate(context.Background(), client)
	require.NoError(t, err)

	return db
}

func seedUser(t *testing.T, users auth.Users, username, token string) *auth.User {
	t.Helper()

	user := &auth.User{
		Username:     username,
		PasswordHash: "hash",
	}
	if token != "" {
		user.Token = strPtr(token)
	}

	created, err := users.Create(context.Background(), user)
	require.NoError(t, err)
	return created
}
