package budgets

import (
	"time"

	"github.com/shopspring/decimal"
)

type Budget struct {
	ID        string          `gorm:"type:uuid;primaryKey"`
	UserID    string          `gorm:"type:uuid;index;not null"`
	Category  string          `gorm:"not null"`
	Limit     decimal.Decimal `gorm:"column:limit_amount;type:numeric(14,2);not null"`
	Color     string          `gorm:"type:text;not null"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

// BudgetWithSpent pairs a budget with its derived spend. Spent is computed
// on every read from the expense transactions whose category matches the
// budget's, case-insensitively. It is never stored.
type BudgetWithSpent struct {
	Budget
	Spent decimal.Decimal
}

type CreateBudgetInput struct {
	UserID   string
	Category string
	Limit    decimal.Decimal
	Color    *string
}

type UpdateBudgetInput struct {
	UserID   string
	BudgetID string
	Category *string
	Limit    *decimal.Decimal
	Color    *string
}
