package ledger

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository is the ledger's view of the store. Atomic runs fn as one
// all-or-nothing unit: every read inside fn observes a consistent snapshot
// and the writes either all commit or none do. Implementations retry fn
// from scratch on concurrent-write conflicts, a bounded number of times,
// and return ErrTransactionConflict when the bound is exhausted. fn must
// therefore be side-effect free apart from calls on the passed Repository.
type Repository interface {
	Atomic(ctx context.Context, fn func(Repository) error) error

	CreateAccount(ctx context.Context, account *Account) error
	GetAccountByID(ctx context.Context, userID, accountID string) (*Account, error)
	GetAccountByName(ctx context.Context, userID, name string) (*Account, error)
	ListAccounts(ctx context.Context, userID string) ([]Account, error)
	UpdateAccount(ctx context.Context, account *Account) error
	UpdateAccountBalance(ctx context.Context, userID, accountID string, balance decimal.Decimal) error
	CountAccountsByName(ctx context.Context, userID, name, excludeID string) (int64, error)
	RenameAccountTransactions(ctx context.Context, userID, accountID, name string) error

	CreateTransaction(ctx context.Context, transaction *Transaction) error
	GetTransactionByID(ctx context.Context, userID, transactionID string) (*Transaction, error)
	UpdateTransaction(ctx context.Context, transaction *Transaction) error
	DeleteTransaction(ctx context.Context, userID, transactionID string) (bool, error)
	ListTransactions(ctx context.Context, userID string, filter ListFilter) ([]Transaction, int64, error)
}
