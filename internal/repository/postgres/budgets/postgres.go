package budgets

import (
	"context"
	"errors"

	budgetsdomain "finledger-go/internal/domain/budgets"
	ledgerdomain "finledger-go/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateBudget(ctx context.Context, budget *budgetsdomain.Budget) error {
	return r.db.WithContext(ctx).Create(budget).Error
}

func (r *PostgresRepository) GetBudgetByID(ctx context.Context, userID, budgetID string) (*budgetsdomain.Budget, error) {
	var budget budgetsdomain.Budget
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, budgetID).
		First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, budgetsdomain.ErrBudgetNotFound
		}
		return nil, err
	}
	return &budget, nil
}

func (r *PostgresRepository) UpdateBudget(ctx context.Context, budget *budgetsdomain.Budget) error {
	return r.db.WithContext(ctx).
		Model(&budgetsdomain.Budget{}).
		Where("id = ? AND user_id = ?", budget.ID, budget.UserID).
		Updates(map[string]interface{}{
			"category":     budget.Category,
			"limit_amount": budget.Limit,
			"color":        budget.Color,
		}).Error
}

func (r *PostgresRepository) DeleteBudget(ctx context.Context, userID, budgetID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Delete(&budgetsdomain.Budget{}, "user_id = ? AND id = ?", userID, budgetID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ListBudgets(ctx context.Context, userID string) ([]budgetsdomain.Budget, error) {
	var budgets []budgetsdomain.Budget
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&budgets).Error; err != nil {
		return nil, err
	}
	return budgets, nil
}

func (r *PostgresRepository) CountBudgetsByCategory(ctx context.Context, userID, category, excludeID string) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&budgetsdomain.Budget{}).
		Where("user_id = ? AND lower(category) = lower(?)", userID, category)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) SumExpensesByCategory(ctx context.Context, userID, category string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&ledgerdomain.Transaction{}).
		Select("coalesce(sum(amount), 0)").
		Where("user_id = ? AND type = ? AND lower(category) = lower(?)", userID, ledgerdomain.TransactionTypeExpense, category).
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
