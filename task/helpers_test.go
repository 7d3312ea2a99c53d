package task_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-auth-tasks/config"
	"github.com/goliatone/go-auth-tasks/storage"
	"github.com/goliatone/go-auth-tasks/task"
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

	require.NoError(t, storage.RegisterMigrations(client, "task", task.GetMigrationsFS()))

	_, err = storage.Migrate(context.Background(), client)
	require.NoError(t, err)

	return db
}

func seedTask(t *testing.T, repo task.Repository, record *task.Task) *task.Task {
	t.Helper()
	created, err := repo.Create(context.Background(), record)
	require.NoError(t, err)
	return created
}

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Debug(msg string, args ...any) { l.messages = append(l.messages, msg) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.messages = append(l.messages, msg) }
func (l *recordingLogger) Error(msg string, args ...any) { l.messages = append(l.messages, msg) }

func ptr[T any](v T) *T {
	return &v
}

func fixedTime() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func assertTaskNotFound(t *testing.T, err error) {
	t.Helper()

	var richErr *errors.Error
	require.True(t, errors.As(err, &richErr), "expected a rich error, got %v", err)
	assert.Equal(t, task.ErrTaskNotFound.TextCode, richErr.TextCode)
	assert.Equal(t, http.StatusNotFound, richErr.Code)
}
