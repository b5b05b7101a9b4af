package accounts

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Account is the persisted account model
type Account struct {
	bun.BaseModel  `bun:"table:accounts,alias:acc"`
	ID             uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username       string     `bun:"user_name,notnull" json:"user_name,omitempty"`
	AccountNumber  int64      `bun:"account_number,notnull" json:"account_number,omitempty"`
	Email          string     `bun:"email,notnull" json:"email,omitempty"`
	IdentityNumber string     `bun:"identity_number,notnull" json:"identity_number,omitempty"`
	PasswordHash   string     `bun:"password_hash,notnull" json:"-"`
	CreatedAt      *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// AccountInfo is the public projection of an Account returned by the
// listing endpoint. The password hash is never part of it. The account
// number is held numeric internally and only formatted at this boundary.
type AccountInfo struct {
	Username       string `json:"user_name"`
	AccountNumber  string `json:"account_number"`
	Email          string `json:"email"`
	IdentityNumber string `json:"identity_number"`
}

// Info projects the account into its listing shape.
func (a *Account) Info() AccountInfo {
	return AccountInfo{
		Username:       a.Username,
		AccountNumber:  strconv.FormatInt(a.AccountNumber, 10),
		Email:          a.Email,
		IdentityNumber: a.IdentityNumber,
	}
}
