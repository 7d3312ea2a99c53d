package auth

import (
	"context"

	"github.com/goliatone/go-errors"
)

// Auther runs the account lifecycle: create account, login and logout.
// Tokens are minted before anything is written, so a failed persist simply
// drops the token without any compensation.
type Auther struct {
	store     SessionStore
	tokens    TokenService
	passwords PasswordAuthenticator
	logger    Logger
}

// NewAuthenticator returns a new Auther
func NewAuthenticator(store SessionStore, tokens TokenService, passwords PasswordAuthenticator) *Auther {
	return &Auther{
		store:     store,
		tokens:    tokens,
		passwords: passwords,
		logger:    DefaultLogger(),
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// CreateAccount registers a user and logs it in right away. Username
// uniqueness is left to the store's unique index.
func (s *Auther) CreateAccount(ctx context.Context, username, password string) (*User, error) {
	if err := (AccountRequest{Username: username, Password: password}).Validate(); err != nil {
		return nil, err
	}

	hash, err := s.passwords.HashPassword(password)
	if err != nil {
		var richErr *errors.Error
		if errors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, internal(err, "failed to hash password")
	}

	token, err := s.issue()
	if err != nil {
		return nil, err
	}

	user, err := s.store.Create(ctx, &User{
		Username:     username,
		PasswordHash: hash,
		Token:        &token,
	})
	if err != nil {
		s.logger.Error("create account failed", "username", username, "error", err)
		return nil, err
	}

	s.logger.Info("account created", "user_id", user.ID, "username", user.Username)

	return user, nil
}

// Login verifies credentials and rotates the user's token. The previous
// token, if any, stops resolving a session once the new one is stored.
func (s *Auther) Login(ctx context.Context, username, password string) (*User, error) {
	user, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.passwords.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		s.logger.Info("login rejected", "username", username)
		if errors.Is(err, ErrMismatchedHashAndPassword) {
			return nil, ErrMismatchedHashAndPassword
		}
		return nil, errors.Wrap(err, errors.CategoryAuth, ErrMismatchedHashAndPassword.Message).
			WithCode(errors.CodeUnauthorized).
			WithTextCode(ErrMismatchedHashAndPassword.TextCode)
	}

	token, err := s.issue()
	if err != nil {
		return nil, err
	}

	if err := s.store.SetToken(ctx, user.ID, &token); err != nil {
		s.logger.Error("login failed to persist token", "user_id", user.ID, "error", err)
		return nil, err
	}

	user.Token = &token

	s.logger.Debug("login succeeded", "user_id", user.ID)

	return user, nil
}

// Logout clears the stored token of an authenticated user. The token the
// user was resolved with must still be the stored one.
func (s *Auther) Logout(ctx context.Context, user *User) error {
	if user == nil || user.Token == nil {
		return ErrUnableToFindSession
	}

	if err := s.store.ClearToken(ctx, user.ID, *user.Token); err != nil {
		s.logger.Error("logout failed", "user_id", user.ID, "error", err)
		return err
	}

	user.Token = nil

	s.logger.Debug("logout succeeded", "user_id", user.ID)

	return nil
}

func (s *Auther) issue() (string, error) {
	token, err := s.tokens.Issue()
	if err != nil {
		s.logger.Error("token issuance failed", "error", err)
		var richErr *errors.Error
		if errors.As(err, &richErr) {
			return "", richErr
		}
		return "", internal(err, ErrTokenIssuance.Message)
	}
	return token, nil
}
