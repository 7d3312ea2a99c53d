package auth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

var (
	// ErrNoEmptyString is returned when hashing an empty password
	ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
		WithCode(errors.CodeBadRequest).
		WithTextCode("EMPTY_PASSWORD")

	// ErrMismatchedHashAndPassword is returned when the password does not match the stored hash
	ErrMismatchedHashAndPassword = errors.New("invalid credentials", errors.CategoryAuth).
		WithCode(errors.CodeUnauthorized).
		WithTextCode("INVALID_CREDENTIALS")

	// ErrIdentityNotFound is the error we return for non found identities
	ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound).
		WithCode(errors.CodeNotFound).
		WithTextCode("IDENTITY_NOT_FOUND")

	// ErrSessionNotFound is returned when a well formed token is not the
	// current token of any user.
	ErrSessionNotFound = errors.New("session not found", errors.CategoryNotFound).
		WithCode(errors.CodeNotFound).
		WithTextCode("SESSION_NOT_FOUND")

	// ErrTokenMalformed is returned when a token fails signature checks
	ErrTokenMalformed = errors.New("token is malformed", errors.CategoryBadInput).
		WithCode(errors.CodeBadRequest).
		WithTextCode("TOKEN_MALFORMED")

	// ErrTokenIssuance is returned when the signer cannot produce a token
	ErrTokenIssuance = errors.New("unable to issue token", errors.CategoryInternal).
		WithCode(errors.CodeInternal).
		WithTextCode("TOKEN_ISSUANCE")

	// ErrUsernameTaken is returned when a username already exists
	ErrUsernameTaken = errors.New("username already taken", errors.CategoryConflict).
		WithCode(errors.CodeConflict).
		WithTextCode("USERNAME_TAKEN")

	// ErrUnableToFindSession is returned when a protected handler runs without
	// a user attached by the bearer middleware.
	ErrUnableToFindSession = errors.New("unable to find session", errors.CategoryInternal).
		WithCode(errors.CodeInternal).
		WithTextCode("SESSION_MISSING")
)

// IsUniqueViolation reports whether err comes from a unique constraint in
// either SQLite or Postgres.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "SQLSTATE=23505")
}

// internal wraps an infrastructure error so it maps to a 500
func internal(err error, msg string) *errors.Error {
	return errors.Wrap(err, errors.CategoryInternal, msg).WithCode(errors.CodeInternal)
}
