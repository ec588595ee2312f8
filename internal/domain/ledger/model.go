package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeChecking   AccountType = "Checking"
	AccountTypeSavings    AccountType = "Savings"
	AccountTypeCreditCard AccountType = "CreditCard"
	AccountTypeCash       AccountType = "Cash"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCreditCard, AccountTypeCash:
		return true
	}
	return false
}

// IsLiability reports whether balances of this account type count as debt
// when computing net worth.
func (t AccountType) IsLiability() bool {
	return t == AccountTypeCreditCard
}

var accountColors = map[AccountType]string{
	AccountTypeChecking:   "#1E293B",
	AccountTypeSavings:    "#059669",
	AccountTypeCreditCard: "#7C3AED",
	AccountTypeCash:       "#D97706",
}

const defaultAccountColor = "#333333"

func (t AccountType) DefaultColor() string {
	if color, ok := accountColors[t]; ok {
		return color
	}
	return defaultAccountColor
}

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "Income"
	TransactionTypeExpense TransactionType = "Expense"
)

func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Effect returns the signed impact of a transaction of this type on its
// account balance: positive for income, negative for expense.
func (t TransactionType) Effect(amount decimal.Decimal) decimal.Decimal {
	if t == TransactionTypeIncome {
		return amount
	}
	return amount.Neg()
}

type Account struct {
	ID          string          `gorm:"type:uuid;primaryKey"`
	UserID      string          `gorm:"type:uuid;index;not null"`
	Name        string          `gorm:"not null"`
	Institution string          `gorm:"not null;default:''"`
	Type        AccountType     `gorm:"type:text;not null"`
	Balance     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	IsLiability bool            `gorm:"not null"`
	Color       string          `gorm:"type:text;not null"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime"`
}

type Transaction struct {
	ID          string          `gorm:"type:uuid;primaryKey"`
	UserID      string          `gorm:"type:uuid;index;not null"`
	Type        TransactionType `gorm:"type:text;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Category    string          `gorm:"not null"`
	Description string          `gorm:"not null;default:''"`
	AccountID   string          `gorm:"type:uuid;index;not null"`
	AccountName string          `gorm:"not null"`
	Date        time.Time       `gorm:"type:date;not null"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
}

type NetWorthSummary struct {
	Assets      decimal.Decimal
	Liabilities decimal.Decimal
	NetWorth    decimal.Decimal
}

type ListFilter struct {
	From      *time.Time
	To        *time.Time
	Category  string
	AccountID string
	Limit     int
	Offset    int
}

type CreateAccountInput struct {
	UserID      string
	Name        string
	Institution string
	Type        AccountType
	Balance     decimal.Decimal
}

type UpdateAccountInput struct {
	UserID      string
	AccountID   string
	Name        *string
	Institution *string
	Color       *string
}

type CreateTransactionInput struct {
	UserID      string
	Type        TransactionType
	Amount      decimal.Decimal
	Category    string
	Description string
	AccountName string
	Date        time.Time
}

// UpdateTransactionInput deliberately has no account field: moving a
// transaction between accounts would require rebalancing two accounts in
// one unit and is out of scope.
type UpdateTransactionInput struct {
	UserID        string
	TransactionID string
	Type          TransactionType
	Amount        decimal.Decimal
	Category      string
	Description   string
	Date          time.Time
}
