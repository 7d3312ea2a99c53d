package jwtware

import (
	"context"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

var (
	// ErrJWTMissingOrMalformed is returned when the Authorization header is
	// missing or not of the form "<scheme> <token>".
	ErrJWTMissingOrMalformed = errors.New("missing or malformed JWT", errors.CategoryBadInput).
		WithCode(errors.CodeBadRequest).
		WithTextCode("AUTH_HEADER_MALFORMED")
)

// SessionResolver validates tokens and resolves their owner. It mirrors
// auth.SessionResolver without importing the auth package.
type SessionResolver[U any] interface {
	Validate(token string) error
	Resolve(ctx context.Context, token string) (U, error)
}

type Config[U any] struct {
	Filter         func(router.Context) bool
	SuccessHandler router.HandlerFunc
	ErrorHandler   router.ErrorHandler
	// Resolver is required
	Resolver   SessionResolver[U]
	ContextKey string
	AuthScheme string
	// ContextEnricher propagates the resolved user to the standard context
	ContextEnricher func(c context.Context, user U) context.Context
}

// New returns the bearer middleware. Stages run in order and the first
// failure short-circuits: extract, validate, resolve, attach, continue.
func New[U any](config ...Config[U]) router.MiddlewareFunc {
	cfg := GetDefaultConfig(config...)

	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			if cfg.Filter != nil && cfg.Filter(ctx) {
				return ctx.Next()
			}

			token, err := ExtractToken(ctx.Header(router.HeaderAuthorization), cfg.AuthScheme)
			if err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			if err := cfg.Resolver.Validate(token); err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			user, err := cfg.Resolver.Resolve(ctx.Context(), token)
			if err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			ctx.Locals(cfg.ContextKey, user)

			if cfg.ContextEnricher != nil {
				ctx.SetContext(cfg.ContextEnricher(ctx.Context(), user))
			}

			return cfg.SuccessHandler(ctx)
		}
	}
}

func GetDefaultConfig[U any](config ...Config[U]) (cfg Config[U]) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(ctx router.Context) error {
			return ctx.Next()
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(ctx router.Context, err error) error {
			return err
		}
	}

	if cfg.Resolver == nil {
		panic("AUTH: JWT middleware configuration: Resolver is required.")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	return cfg
}

// ExtractToken parses "<scheme> <token>". The scheme must match exactly and
// be followed by a single space and one non-empty token.
func ExtractToken(header, authScheme string) (string, error) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != authScheme {
		return "", ErrJWTMissingOrMalformed
	}

	if token == "" || strings.ContainsAny(token, " \t") {
		return "", ErrJWTMissingOrMalformed
	}

	return token, nil
}
