package budgets

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	CreateBudget(ctx context.Context, budget *Budget) error
	GetBudgetByID(ctx context.Context, userID, budgetID string) (*Budget, error)
	UpdateBudget(ctx context.Context, budget *Budget) error
	DeleteBudget(ctx context.Context, userID, budgetID string) (bool, error)
	ListBudgets(ctx context.Context, userID string) ([]Budget, error)
	CountBudgetsByCategory(ctx context.Context, userID, category, excludeID string) (int64, error)

	// SumExpensesByCategory totals Expense transaction amounts whose
	// category matches case-insensitively.
	SumExpensesByCategory(ctx context.Context, userID, category string) (decimal.Decimal, error)
}
