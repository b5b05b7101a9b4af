package accounts

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

type ListAccountsMessage struct {
	OnResponse func(*ListAccountsResponse)
}

func (e ListAccountsMessage) Type() string { return "account.list" }

type ListAccountsResponse struct {
	Accounts []AccountInfo `json:"accounts"`
}

type ListAccountsHandler struct {
	repo RepositoryManager
}

func NewListAccountsHandler(repo RepositoryManager) *ListAccountsHandler {
	return &ListAccountsHandler{repo: repo}
}

func (h *ListAccountsHandler) Execute(ctx context.Context, event ListAccountsMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during account listing",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *ListAccountsHandler) execute(ctx context.Context, event ListAccountsMessage) error {
	records, err := h.repo.Accounts().List(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list accounts")
	}

	infos := make([]AccountInfo, 0, len(records))
	for _, record := range records {
		infos = append(infos, record.Info())
	}

	if event.OnResponse != nil {
		event.OnResponse(&ListAccountsResponse{Accounts: infos})
	}

	return nil
}
