package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// TokenServiceImpl implements the TokenService interface with HS256 JWTs.
// Tokens carry no expiration: a token stays usable until the user's stored
// token is overwritten by a login or cleared by a logout.
type TokenServiceImpl struct {
	signingKey []byte
	issuer     string
	logger     Logger
	now        func() time.Time
}

// NewTokenService creates a new TokenService instance
func NewTokenService(signingKey []byte, issuer string, logger Logger) *TokenServiceImpl {
	if logger == nil {
		logger = DefaultLogger()
	}
	return &TokenServiceImpl{
		signingKey: signingKey,
		issuer:     issuer,
		logger:     logger,
		now:        time.Now,
	}
}

// Issue mints a new signed token. Every token gets a random jti so tokens
// minted in the same second never collide.
func (ts *TokenServiceImpl) Issue() (string, error) {
	if len(ts.signingKey) == 0 {
		return "", ErrTokenIssuance
	}

	claims := &jwt.RegisteredClaims{
		Issuer:   ts.issuer,
		IssuedAt: jwt.NewNumericDate(ts.now()),
		ID:       uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		ts.logger.Error("TokenService failed to sign token", "error", err)
		return "", errors.Wrap(err, errors.CategoryInternal, ErrTokenIssuance.Message).
			WithCode(errors.CodeInternal).
			WithTextCode(ErrTokenIssuance.TextCode)
	}

	return signedString, nil
}

// Validate checks the token signature and issuer
func (ts *TokenServiceImpl) Validate(tokenString string) error {
	parserOptions := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		return errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithCode(ErrTokenMalformed.Code).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	if !token.Valid {
		return ErrTokenMalformed
	}

	return nil
}
