package accounts

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Accounts is the persistence boundary for account records. Email is the
// natural key for every lookup and mutation except listing.
type Accounts interface {
	Create(ctx context.Context, record *Account) (*Account, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Account) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*Account, error)
	List(ctx context.Context) ([]*Account, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
	UpdatePasswordTx(ctx context.Context, tx bun.IDB, email, passwordHash string) error
	DeleteByEmail(ctx context.Context, email string) error
	DeleteByEmailTx(ctx context.Context, tx bun.IDB, email string) error
}

type accountsRepo struct {
	db *bun.DB
}

var _ Accounts = (*accountsRepo)(nil)

func NewAccountsRepository(db *bun.DB) Accounts {
	return &accountsRepo{db: db}
}

// IsRecordNotFound reports whether err signals a missing account record.
func IsRecordNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, ErrAccountNotFound)
}

func (a *accountsRepo) Create(ctx context.Context, record *Account) (*Account, error) {
	return a.CreateTx(ctx, a.db, record)
}

func (a *accountsRepo) CreateTx(ctx context.Context, tx bun.IDB, record *Account) (*Account, error) {
	prepareAccountDefaults(record)

	if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to insert account")
	}

	return record, nil
}

func (a *accountsRepo) GetByEmail(ctx context.Context, email string) (*Account, error) {
	return a.GetByEmailTx(ctx, a.db, email)
}

func (a *accountsRepo) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*Account, error) {
	record := &Account{}

	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to select account")
	}

	return record, nil
}

func (a *accountsRepo) List(ctx context.Context) ([]*Account, error) {
	var records []*Account

	// no ordering clause: listing preserves store order
	if err := a.db.NewSelect().Model(&records).Scan(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list accounts")
	}

	return records, nil
}

func (a *accountsRepo) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	return a.UpdatePasswordTx(ctx, a.db, email, passwordHash)
}

func (a *accountsRepo) UpdatePasswordTx(ctx context.Context, tx bun.IDB, email, passwordHash string) error {
	res, err := tx.NewUpdate().
		Model((*Account)(nil)).
		Set("password_hash = ?", passwordHash).
		Set("updated_at = CURRENT_TIMESTAMP").
		Where("email = ?", email).
		Exec(ctx)

	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to update account password")
	}

	return requireRowsAffected(res)
}

func (a *accountsRepo) DeleteByEmail(ctx context.Context, email string) error {
	return a.DeleteByEmailTx(ctx, a.db, email)
}

func (a *accountsRepo) DeleteByEmailTx(ctx context.Context, tx bun.IDB, email string) error {
	res, err := tx.NewDelete().
		Model((*Account)(nil)).
		Where("email = ?", email).
		Exec(ctx)

	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete account")
	}

	return requireRowsAffected(res)
}

func requireRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to read affected rows")
	}
	if affected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func prepareAccountDefaults(record *Account) {
	if record == nil {
		return
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}
