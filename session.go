package accounts

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims exposes the identity attributes carried inside a bearer token.
type Claims interface {
	GetUserID() string
	GetEmail() string
	GetUsername() string
	GetIdentityNumber() string
	Expires() time.Time
}

// SessionClaims is the payload signed into a bearer token at
// authentication time and decoded back on each gated request.
type SessionClaims struct {
	jwt.RegisteredClaims
	UID            string `json:"id,omitempty"`
	Email          string `json:"email,omitempty"`
	Username       string `json:"username,omitempty"`
	IdentityNumber string `json:"identity_number,omitempty"`
}

var _ Claims = (*SessionClaims)(nil)

// GetUserID returns the account id
func (c *SessionClaims) GetUserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.RegisteredClaims.Subject
}

// GetEmail returns the account email
func (c *SessionClaims) GetEmail() string {
	return c.Email
}

// GetUsername returns the account username
func (c *SessionClaims) GetUsername() string {
	return c.Username
}

// GetIdentityNumber returns the account identity number
func (c *SessionClaims) GetIdentityNumber() string {
	return c.IdentityNumber
}

// Expires returns the expiration time
func (c *SessionClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *SessionClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// NewSessionClaims derives the token payload from an account.
func NewSessionClaims(account *Account, expiration time.Duration) *SessionClaims {
	now := time.Now()
	return &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
		},
		UID:            account.ID.String(),
		Email:          account.Email,
		Username:       account.Username,
		IdentityNumber: account.IdentityNumber,
	}
}
