package auth

import (
	"context"

	"github.com/gofiber/fiber/v2/log"
)

// Logger is the logging contract used across the service. Arguments after
// the message are key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetIssuer() string
	GetAuthScheme() string
	GetContextKey() string
	GetBcryptCost() int
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

// TokenService mints and checks bearer tokens. Validate is a pure integrity
// check, it never resolves who owns the token.
type TokenService interface {
	Issue() (string, error)
	Validate(token string) error
}

// SessionStore is the narrow persistence contract the auth flow needs.
type SessionStore interface {
	GetByToken(ctx context.Context, token string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
	SetToken(ctx context.Context, id int64, token *string) error
	// ClearToken removes the token of id only if it still equals current
	ClearToken(ctx context.Context, id int64, current string) error
}

// FiberLogger writes through fiber's log package, prefixing every message
// with Prefix. It also satisfies the persistence and router logger contracts.
type FiberLogger struct {
	Prefix string
}

// NewFiberLogger returns a FiberLogger for prefix, e.g. "TASK"
func NewFiberLogger(prefix string) FiberLogger {
	return FiberLogger{Prefix: prefix}
}

func (l FiberLogger) Debug(msg string, args ...any) {
	log.Debugw(l.message(msg), args...)
}

func (l FiberLogger) Info(msg string, args ...any) {
	log.Infow(l.message(msg), args...)
}

func (l FiberLogger) Warn(msg string, args ...any) {
	log.Warnw(l.message(msg), args...)
}

func (l FiberLogger) Error(msg string, args ...any) {
	log.Errorw(l.message(msg), args...)
}

// Fatal logs and exits the process
func (l FiberLogger) Fatal(msg string, args ...any) {
	log.Fatalw(l.message(msg), args...)
}

func (l FiberLogger) message(msg string) string {
	if l.Prefix == "" {
		return msg
	}
	return l.Prefix + " " + msg
}

// DefaultLogger returns the logger used when none is configured.
func DefaultLogger() Logger {
	return NewFiberLogger("AUTH")
}
