package accounts

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

type AuthenticateMessage struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	OnResponse func(*AuthenticateResponse)
}

func (e AuthenticateMessage) Type() string { return "account.authenticate" }

type AuthenticateResponse struct {
	Token string `json:"token"`
}

type AuthenticateHandler struct {
	repo   RepositoryManager
	tokens *TokenService
}

func NewAuthenticateHandler(repo RepositoryManager, tokens *TokenService) *AuthenticateHandler {
	return &AuthenticateHandler{repo: repo, tokens: tokens}
}

func (h *AuthenticateHandler) Execute(ctx context.Context, event AuthenticateMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during authentication",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *AuthenticateHandler) execute(ctx context.Context, event AuthenticateMessage) error {
	account, err := h.repo.Accounts().GetByEmail(ctx, event.Email)
	if err != nil {
		if IsRecordNotFound(err) {
			// same failure as a wrong password, to prevent account enumeration
			return ErrBadCredentials
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve account during authentication")
	}

	if err := ComparePasswordAndHash(event.Password, account.PasswordHash); err != nil {
		if goerrors.Is(err, ErrMismatchedHashAndPassword) {
			return ErrBadCredentials
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to compare password and hash")
	}

	token, err := h.tokens.Generate(account)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign session token")
	}

	if event.OnResponse != nil {
		event.OnResponse(&AuthenticateResponse{Token: token})
	}

	return nil
}
