package auth_test

import (
	"fmt"
	"net/http"
	"testing"

	auth "github.com/goliatone/go-auth-tasks"
	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
)

func TestSentinelStatusCodes(t *testing.T) {
	tests := []struct {
		err  *errors.Error
		want int
	}{
		{auth.ErrNoEmptyString, http.StatusBadRequest},
		{auth.ErrMismatchedHashAndPassword, http.StatusUnauthorized},
		{auth.ErrIdentityNotFound, http.StatusNotFound},
		{auth.ErrSessionNotFound, http.StatusNotFound},
		{auth.ErrTokenMalformed, http.StatusBadRequest},
		{auth.ErrTokenIssuance, http.StatusInternalServerError},
		{auth.ErrUsernameTaken, http.StatusConflict},
		{auth.ErrUnableToFindSession, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.TextCode, func(t *testing.T) {
			assert.Equal(t, tt.want, auth.StatusFromError(tt.err))
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sqlite", fmt.Errorf("constraint failed: UNIQUE constraint failed: users.username (2067)"), true},
		{"postgres message", fmt.Errorf(`ERROR: duplicate key value violates unique constraint "users_username_key"`), true},
		{"postgres sqlstate", fmt.Errorf("ERROR #23505 SQLSTATE=23505"), true},
		{"other", fmt.Errorf("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, auth.IsUniqueViolation(tt.err))
		})
	}
}
