package accounts

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// UpdatePasswordMessage carries the session email and the replacement
// password. Only the stored hash is mutated; every other attribute of the
// account is immutable after registration.
type UpdatePasswordMessage struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (e UpdatePasswordMessage) Type() string { return "account.update_password" }

type UpdatePasswordHandler struct {
	repo RepositoryManager
}

func NewUpdatePasswordHandler(repo RepositoryManager) *UpdatePasswordHandler {
	return &UpdatePasswordHandler{repo: repo}
}

func (h *UpdatePasswordHandler) Execute(ctx context.Context, event UpdatePasswordMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during password update",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *UpdatePasswordHandler) execute(ctx context.Context, event UpdatePasswordMessage) error {
	if _, err := h.repo.Accounts().GetByEmail(ctx, event.Email); err != nil {
		if IsRecordNotFound(err) {
			return ErrAccountNotFound
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve account for password update")
	}

	hash, err := HashPassword(event.Password)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	if err := h.repo.Accounts().UpdatePassword(ctx, event.Email, hash); err != nil {
		if IsRecordNotFound(err) {
			return ErrAccountNotFound
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to store updated password")
	}

	return nil
}
