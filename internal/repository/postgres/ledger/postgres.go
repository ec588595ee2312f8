package ledger

import (
	"context"
	"database/sql"
	"errors"
	"time"

	ledgerdomain "finledger-go/internal/domain/ledger"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultAtomicAttempts = 5

type PostgresRepository struct {
	db       *gorm.DB
	attempts int
}

func NewPostgres(db *gorm.DB, atomicAttempts int) *PostgresRepository {
	if atomicAttempts <= 0 {
		atomicAttempts = defaultAtomicAttempts
	}
	return &PostgresRepository{db: db, attempts: atomicAttempts}
}

// Atomic runs fn in a serializable transaction. Postgres aborts one of two
// concurrent serializable transactions that read-modify-write the same
// rows; that abort is the conflict signal, and fn is retried from scratch
// against the fresh state, up to the configured bound.
func (r *PostgresRepository) Atomic(ctx context.Context, fn func(ledgerdomain.Repository) error) error {
	var err error
	for attempt := 0; attempt < r.attempts; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(&PostgresRepository{db: tx, attempts: r.attempts})
		}, &sql.TxOptions{Isolation: sql.LevelSerializable})

		if !isSerializationFailure(err) {
			return err
		}
	}
	return ledgerdomain.ErrTransactionConflict
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	// 40001 serialization_failure, 40P01 deadlock_detected
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

func (r *PostgresRepository) CreateAccount(ctx context.Context, account *ledgerdomain.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *PostgresRepository) GetAccountByID(ctx context.Context, userID, accountID string) (*ledgerdomain.Account, error) {
	var account ledgerdomain.Account
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, accountID).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledgerdomain.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// GetAccountByName requires the name to resolve to exactly one account.
func (r *PostgresRepository) GetAccountByName(ctx context.Context, userID, name string) (*ledgerdomain.Account, error) {
	var accounts []ledgerdomain.Account
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		Limit(2).
		Find(&accounts).Error; err != nil {
		return nil, err
	}

	switch len(accounts) {
	case 0:
		return nil, ledgerdomain.ErrAccountNotFound
	case 1:
		return &accounts[0], nil
	default:
		return nil, ledgerdomain.ErrAccountAmbiguous
	}
}

func (r *PostgresRepository) ListAccounts(ctx context.Context, userID string) ([]ledgerdomain.Account, error) {
	var accounts []ledgerdomain.Account
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *PostgresRepository) UpdateAccount(ctx context.Context, account *ledgerdomain.Account) error {
	return r.db.WithContext(ctx).
		Model(&ledgerdomain.Account{}).
		Where("id = ? AND user_id = ?", account.ID, account.UserID).
		Updates(map[string]interface{}{
			"name":        account.Name,
			"institution": account.Institution,
			"color":       account.Color,
			"updated_at":  time.Now().UTC(),
		}).Error
}

func (r *PostgresRepository) UpdateAccountBalance(ctx context.Context, userID, accountID string, balance decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&ledgerdomain.Account{}).
		Where("id = ? AND user_id = ?", accountID, userID).
		Updates(map[string]interface{}{
			"balance":    balance,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ledgerdomain.ErrAccountMissing
	}
	return nil
}

func (r *PostgresRepository) CountAccountsByName(ctx context.Context, userID, name, excludeID string) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&ledgerdomain.Account{}).
		Where("user_id = ? AND lower(name) = lower(?)", userID, name)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) RenameAccountTransactions(ctx context.Context, userID, accountID, name string) error {
	return r.db.WithContext(ctx).
		Model(&ledgerdomain.Transaction{}).
		Where("user_id = ? AND account_id = ?", userID, accountID).
		Update("account_name", name).Error
}

func (r *PostgresRepository) CreateTransaction(ctx context.Context, transaction *ledgerdomain.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *PostgresRepository) GetTransactionByID(ctx context.Context, userID, transactionID string) (*ledgerdomain.Transaction, error) {
	var transaction ledgerdomain.Transaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, transactionID).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledgerdomain.ErrTransactionNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

func (r *PostgresRepository) UpdateTransaction(ctx context.Context, transaction *ledgerdomain.Transaction) error {
	return r.db.WithContext(ctx).
		Model(&ledgerdomain.Transaction{}).
		Where("id = ? AND user_id = ?", transaction.ID, transaction.UserID).
		Updates(map[string]interface{}{
			"type":        transaction.Type,
			"amount":      transaction.Amount,
			"category":    transaction.Category,
			"description": transaction.Description,
			"date":        transaction.Date,
		}).Error
}

func (r *PostgresRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Delete(&ledgerdomain.Transaction{}, "user_id = ? AND id = ?", userID, transactionID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ListTransactions(ctx context.Context, userID string, filter ledgerdomain.ListFilter) ([]ledgerdomain.Transaction, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&ledgerdomain.Transaction{}).
		Where("user_id = ?", userID)
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}
	if filter.Category != "" {
		query = query.Where("lower(category) = lower(?)", filter.Category)
	}
	if filter.AccountID != "" {
		query = query.Where("account_id = ?", filter.AccountID)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("date desc, created_at desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var items []ledgerdomain.Transaction
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}
