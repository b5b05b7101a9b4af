package accounts

import (
	"context"
	"math/rand/v2"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/uptrace/bun"
)

// Account numbers are drawn uniformly from [100000, 999999]. Collisions
// between accounts are accepted; email is the identifying key.
const (
	accountNumberMin  = 100000
	accountNumberSpan = 900000
)

type RegisterAccountMessage struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	Username       string `json:"username"`
	IdentityNumber string `json:"identity_number"`
}

func (e RegisterAccountMessage) Type() string { return "account.register" }

type RegisterAccountHandler struct {
	repo RepositoryManager
}

func NewRegisterAccountHandler(repo RepositoryManager) *RegisterAccountHandler {
	return &RegisterAccountHandler{repo: repo}
}

func (h *RegisterAccountHandler) Execute(ctx context.Context, event RegisterAccountMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during account registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterAccountHandler) execute(ctx context.Context, event RegisterAccountMessage) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		// check-then-insert is not atomic across connections; a concurrent
		// registration for the same email can slip past this lookup
		if _, err := h.repo.Accounts().GetByEmailTx(ctx, tx, event.Email); err == nil {
			return ErrAccountExists
		} else if !IsRecordNotFound(err) {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up existing account")
		}

		hash, err := HashPassword(event.Password)
		if err != nil {
			var richErr *goerrors.Error
			if goerrors.As(err, &richErr) {
				return goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		account := &Account{
			Email:          event.Email,
			PasswordHash:   hash,
			Username:       event.Username,
			IdentityNumber: event.IdentityNumber,
			AccountNumber:  int64(rand.IntN(accountNumberSpan) + accountNumberMin),
		}

		if id, err := hashid.NewUUID(event.Email); err == nil {
			account.ID = id
		}

		if _, err := h.repo.Accounts().CreateTx(ctx, tx, account); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "could not create account")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}

		return goerrors.Wrap(err, goerrors.CategoryInternal, "account registration transaction failed")
	}

	return nil
}
