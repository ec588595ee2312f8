package budgets

import "errors"

var (
	ErrBudgetNotFound   = errors.New("budget not found")
	ErrBudgetExists     = errors.New("budget for this category already exists")
	ErrInvalidLimit     = errors.New("limit must be positive")
	ErrCategoryRequired = errors.New("category is required")
)
