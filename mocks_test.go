package accounts_test

import (
	"context"
	"database/sql"

	accounts "github.com/accountkit/go-accounts"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"
)

// MockAccounts implements accounts.Accounts
type MockAccounts struct {
	mock.Mock
}

func (m *MockAccounts) Create(ctx context.Context, record *accounts.Account) (*accounts.Account, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.Account), args.Error(1)
}

func (m *MockAccounts) CreateTx(ctx context.Context, tx bun.IDB, record *accounts.Account) (*accounts.Account, error) {
	args := m.Called(ctx, tx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.Account), args.Error(1)
}

func (m *MockAccounts) GetByEmail(ctx context.Context, email string) (*accounts.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.Account), args.Error(1)
}

func (m *MockAccounts) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*accounts.Account, error) {
	args := m.Called(ctx, tx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounts.Account), args.Error(1)
}

func (m *MockAccounts) List(ctx context.Context) ([]*accounts.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*accounts.Account), args.Error(1)
}

func (m *MockAccounts) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	args := m.Called(ctx, email, passwordHash)
	return args.Error(0)
}

func (m *MockAccounts) UpdatePasswordTx(ctx context.Context, tx bun.IDB, email, passwordHash string) error {
	args := m.Called(ctx, tx, email, passwordHash)
	return args.Error(0)
}

func (m *MockAccounts) DeleteByEmail(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAccounts) DeleteByEmailTx(ctx context.Context, tx bun.IDB, email string) error {
	args := m.Called(ctx, tx, email)
	return args.Error(0)
}

// MockRepositoryManager implements accounts.RepositoryManager. RunInTx
// executes the given function with a zero transaction so command handlers
// can be exercised without a live database.
type MockRepositoryManager struct {
	mock.Mock
	accounts *MockAccounts
}

func NewMockRepositoryManager(repo *MockAccounts) *MockRepositoryManager {
	return &MockRepositoryManager{accounts: repo}
}

func (m *MockRepositoryManager) Validate() error {
	return nil
}

func (m *MockRepositoryManager) MustValidate() {}

func (m *MockRepositoryManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	return f(ctx, bun.Tx{})
}

func (m *MockRepositoryManager) Accounts() accounts.Accounts {
	return m.accounts
}

// testLogger discards everything
type testLogger struct{}

func (testLogger) Debug(msg string, args ...any) {}
func (testLogger) Info(msg string, args ...any)  {}
func (testLogger) Warn(msg string, args ...any)  {}
func (testLogger) Error(msg string, args ...any) {}
