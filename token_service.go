package accounts

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// DefaultTokenExpiration is how long an issued bearer token stays valid.
const DefaultTokenExpiration = time.Hour

// TokenService signs session claims into bearer tokens and decodes them
// back. Decode deliberately skips signature and expiry verification to
// match the behavior of the session gate; Validate is the verifying
// counterpart.
type TokenService struct {
	signingKey []byte
	expiration time.Duration
	logger     Logger
}

// NewTokenService creates a new TokenService instance
func NewTokenService(signingKey []byte, expiration time.Duration, logger Logger) *TokenService {
	if logger == nil {
		logger = defLogger{}
	}
	if expiration <= 0 {
		expiration = DefaultTokenExpiration
	}
	return &TokenService{
		signingKey: signingKey,
		expiration: expiration,
		logger:     logger,
	}
}

// Expiration returns the configured token lifetime.
func (ts *TokenService) Expiration() time.Duration {
	return ts.expiration
}

// Generate builds session claims for the account and signs them.
func (ts *TokenService) Generate(account *Account) (string, error) {
	if account == nil {
		return "", errors.New("account must not be nil", errors.CategoryInternal)
	}
	return ts.SignClaims(NewSessionClaims(account, ts.expiration))
}

// SignClaims signs arbitrary session claims using the configured signing key.
func (ts *TokenService) SignClaims(claims *SessionClaims) (string, error) {
	if claims == nil {
		return "", errors.New("claims must not be nil", errors.CategoryInternal)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Decode extracts the claims payload from a token string without
// verifying its signature or expiry.
func (ts *TokenService) Decode(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, errors.Wrap(err, errors.CategoryAuth, "unable to decode token payload").
			WithCode(errors.CodeUnauthorized)
	}
	return claims, nil
}

// Validate parses a token string and verifies its signature and expiry,
// returning the structured claims.
func (ts *TokenService) Validate(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.Wrap(err, errors.CategoryAuth, "token is expired").
				WithCode(errors.CodeUnauthorized)
		}
		return nil, errors.Wrap(err, errors.CategoryAuth, "token is malformed").
			WithCode(errors.CodeUnauthorized)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		ts.logger.Error("TokenService validate could not decode or validate claims")
		return nil, errors.New("unable to map claims", errors.CategoryAuth).
			WithCode(errors.CodeUnauthorized)
	}

	return claims, nil
}
