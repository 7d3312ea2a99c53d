package task_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-auth-tasks/task"
)

func decodePatch(t *testing.T, raw string) task.Patch {
	t.Helper()
	var p task.Patch
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return p
}

func TestPatchTriState(t *testing.T) {
	stored := func() *task.Task {
		return &task.Task{
			ID:          1,
			Title:       "title",
			Priority:    ptr("A"),
			Description: ptr("desc"),
			UserID:      ptr(int64(5)),
			IsDefault:   ptr(true),
		}
	}

	tests := []struct {
		name    string
		raw     string
		columns []string
		check   func(t *testing.T, got *task.Task)
	}{
		{
			name:    "empty patch changes nothing",
			raw:     `{}`,
			columns: []string{},
			check: func(t *testing.T, got *task.Task) {
				assert.Equal(t, stored(), got)
			},
		},
		{
			name:    "null clears",
			raw:     `{"priority":null}`,
			columns: []string{"priority"},
			check: func(t *testing.T, got *task.Task) {
				assert.Nil(t, got.Priority)
				assert.Equal(t, "title", got.Title)
				assert.Equal(t, "desc", *got.Description)
			},
		},
		{
			name:    "value sets",
			raw:     `{"priority":"B","description":"new"}`,
			columns: []string{"priority", "description"},
			check: func(t *testing.T, got *task.Task) {
				assert.Equal(t, "B", *got.Priority)
				assert.Equal(t, "new", *got.Description)
			},
		},
		{
			name:    "mixed",
			raw:     `{"title":"renamed","user_id":null,"is_default":false,"completed_at":"2024-05-01T12:00:00Z"}`,
			columns: []string{"title", "completed_at", "user_id", "is_default"},
			check: func(t *testing.T, got *task.Task) {
				assert.Equal(t, "renamed", got.Title)
				assert.Nil(t, got.UserID)
				require.NotNil(t, got.IsDefault)
				assert.False(t, *got.IsDefault)
				require.NotNil(t, got.CompletedAt)
				assert.True(t, fixedTime().Equal(*got.CompletedAt))
				assert.Equal(t, "A", *got.Priority)
			},
		},
		{
			name:    "deleted_at can be cleared",
			raw:     `{"deleted_at":null}`,
			columns: []string{"deleted_at"},
			check: func(t *testing.T, got *task.Task) {
				assert.Nil(t, got.DeletedAt)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch := decodePatch(t, tt.raw)
			require.NoError(t, patch.Validate())

			record := stored()
			columns := patch.ApplyTo(record)
			assert.ElementsMatch(t, tt.columns, columns)
			assert.Equal(t, len(tt.columns) == 0, patch.IsEmpty())
			tt.check(t, record)
		})
	}
}

func TestPatchValidate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"title absent", `{"priority":"A"}`, false},
		{"title value", `{"title":"ok"}`, false},
		{"title null", `{"title":null}`, true},
		{"title blank", `{"title":""}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decodePatch(t, tt.raw).Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var richErr *errors.Error
			require.True(t, errors.As(err, &richErr))
			assert.Equal(t, http.StatusBadRequest, richErr.Code)
			require.Len(t, richErr.ValidationErrors, 1)
			assert.Equal(t, "title", richErr.ValidationErrors[0].Field)
		})
	}
}

func TestCreateRequest(t *testing.T) {
	assert.Error(t, task.CreateRequest{}.Validate())

	req := task.CreateRequest{Title: "t", Priority: ptr("A")}
	require.NoError(t, req.Validate())

	record := req.ToTask()
	assert.Equal(t, "t", record.Title)
	assert.Equal(t, "A", *record.Priority)
	assert.Nil(t, record.Description)
	assert.Nil(t, record.DeletedAt)
}

func TestReplaceRequest(t *testing.T) {
	assert.Error(t, task.ReplaceRequest{Priority: ptr("A")}.Validate())

	var req task.ReplaceRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"t","priority":null}`), &req))
	require.NoError(t, req.Validate())

	record := req.ToTask(4)
	assert.Equal(t, int64(4), record.ID)
	assert.Nil(t, record.Priority)
	assert.Nil(t, record.Description)
	assert.Nil(t, record.IsDefault)
}
