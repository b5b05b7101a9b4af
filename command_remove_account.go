package accounts

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

type RemoveAccountMessage struct {
	Email string `json:"email"`
}

func (e RemoveAccountMessage) Type() string { return "account.remove" }

type RemoveAccountHandler struct {
	repo RepositoryManager
}

func NewRemoveAccountHandler(repo RepositoryManager) *RemoveAccountHandler {
	return &RemoveAccountHandler{repo: repo}
}

func (h *RemoveAccountHandler) Execute(ctx context.Context, event RemoveAccountMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during account removal",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RemoveAccountHandler) execute(ctx context.Context, event RemoveAccountMessage) error {
	if _, err := h.repo.Accounts().GetByEmail(ctx, event.Email); err != nil {
		if IsRecordNotFound(err) {
			return ErrAccountNotFound
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve account for removal")
	}

	if err := h.repo.Accounts().DeleteByEmail(ctx, event.Email); err != nil {
		if IsRecordNotFound(err) {
			return ErrAccountNotFound
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete account")
	}

	return nil
}
