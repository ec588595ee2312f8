package ledger

import "errors"

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrAccountAmbiguous = errors.New("account name matches more than one account")
	ErrAccountMissing   = errors.New("account no longer exists")
	ErrAccountNameTaken = errors.New("account name already in use")

	ErrTransactionNotFound = errors.New("transaction not found")
	ErrTransactionConflict = errors.New("transaction aborted after repeated conflicts")

	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInvalidAccountType     = errors.New("invalid account type")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrNameRequired           = errors.New("name is required")
	ErrCategoryRequired       = errors.New("category is required")
)
