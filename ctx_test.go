package auth_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/goliatone/go-auth-tasks"
)

func TestWithContext(t *testing.T) {
	user := &auth.User{ID: 1, Username: "alice"}

	ctx := auth.WithContext(context.Background(), user)
	got, ok := auth.FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, user, got)

	_, ok = auth.FromContext(context.Background())
	assert.False(t, ok)

	_, ok = auth.FromContext(auth.WithContext(context.Background(), nil))
	assert.False(t, ok)
}

func TestGetRouterUser(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		setup  func(ctx router.Context, user *auth.User)
		wantOK bool
	}{
		{
			name: "from locals",
			key:  "user",
			setup: func(ctx router.Context, user *auth.User) {
				ctx.Locals("user", user)
			},
			wantOK: true,
		},
		{
			name: "custom key",
			key:  "account",
			setup: func(ctx router.Context, user *auth.User) {
				ctx.Locals("account", user)
			},
			wantOK: true,
		},
		{
			name: "empty key defaults to user",
			key:  "",
			setup: func(ctx router.Context, user *auth.User) {
				ctx.Locals("user", user)
			},
			wantOK: true,
		},
		{
			name: "from user context",
			key:  "user",
			setup: func(ctx router.Context, user *auth.User) {
				ctx.SetContext(auth.WithContext(ctx.Context(), user))
			},
			wantOK: true,
		},
		{
			name:   "missing",
			key:    "user",
			setup:  func(ctx router.Context, user *auth.User) {},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &auth.User{ID: 9, Username: "alice"}
			srv := router.NewFiberAdapter(func(*fiber.App) *fiber.App {
				return fiber.New()
			})
			srv.Router().Get("/", func(ctx router.Context) error {
				tt.setup(ctx, user)
				got, ok := auth.GetRouterUser(ctx, tt.key)
				assert.Equal(t, tt.wantOK, ok)
				if ok {
					assert.Equal(t, user.ID, got.ID)
				}
				return ctx.SendStatus(fiber.StatusNoContent)
			})

			resp, err := srv.WrappedRouter().Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
		})
	}
}
