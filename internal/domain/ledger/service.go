package ledger

import (
	"context"
	"errors"
	"strings"

	"finledger-go/internal/domain/stream"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service maintains the one real invariant of the system: an account's
// balance always equals its initial balance plus the signed effects of the
// transactions that currently reference it. Every balance write happens
// inside an atomic unit together with the transaction write it accounts
// for, so no observer of the store ever sees one without the other.
type Service struct {
	repo   Repository
	events stream.Publisher
}

func NewService(repo Repository, events stream.Publisher) *Service {
	if events == nil {
		events = stream.NopPublisher{}
	}
	return &Service{repo: repo, events: events}
}

func (s *Service) CreateAccount(ctx context.Context, input CreateAccountInput) (*Account, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if !input.Type.Valid() {
		return nil, ErrInvalidAccountType
	}

	taken, err := s.repo.CountAccountsByName(ctx, input.UserID, name, "")
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, ErrAccountNameTaken
	}

	account := Account{
		ID:          uuid.NewString(),
		UserID:      input.UserID,
		Name:        name,
		Institution: strings.TrimSpace(input.Institution),
		Type:        input.Type,
		Balance:     input.Balance,
		IsLiability: input.Type.IsLiability(),
		Color:       input.Type.DefaultColor(),
	}

	if err := s.repo.CreateAccount(ctx, &account); err != nil {
		return nil, err
	}

	s.events.Publish(stream.Event{Collection: stream.CollectionAccounts, Action: stream.ActionCreated, EntityID: account.ID, UserID: input.UserID})
	return &account, nil
}

// UpdateAccount edits display fields. Balance is not editable here; it
// only moves through transaction mutations. A rename also rewrites the
// denormalized account name on the account's transactions in the same
// atomic unit, so the display copy never detaches from the account.
func (s *Service) UpdateAccount(ctx context.Context, input UpdateAccountInput) (*Account, error) {
	var updated Account
	err := s.repo.Atomic(ctx, func(tx Repository) error {
		account, err := tx.GetAccountByID(ctx, input.UserID, input.AccountID)
		if err != nil {
			return err
		}

		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return ErrNameRequired
			}
			if name != account.Name {
				taken, err := tx.CountAccountsByName(ctx, input.UserID, name, account.ID)
				if err != nil {
					return err
				}
				if taken > 0 {
					return ErrAccountNameTaken
				}
				account.Name = name
				if err := tx.RenameAccountTransactions(ctx, input.UserID, account.ID, name); err != nil {
					return err
				}
			}
		}
		if input.Institution != nil {
			account.Institution = strings.TrimSpace(*input.Institution)
		}
		if input.Color != nil {
			account.Color = strings.TrimSpace(*input.Color)
		}

		if err := tx.UpdateAccount(ctx, account); err != nil {
			return err
		}

		updated = *account
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(stream.Event{Collection: stream.CollectionAccounts, Action: stream.ActionUpdated, EntityID: updated.ID, UserID: input.UserID})
	return &updated, nil
}

func (s *Service) ListAccounts(ctx context.Context, userID string) ([]Account, error) {
	return s.repo.ListAccounts(ctx, userID)
}

// NetWorth sums assets and liabilities over the user's accounts. Liability
// balances are stored as the amount owed and subtracted from net worth.
func (s *Service) NetWorth(ctx context.Context, userID string) (NetWorthSummary, error) {
	accounts, err := s.repo.ListAccounts(ctx, userID)
	if err != nil {
		return NetWorthSummary{}, err
	}

	summary := NetWorthSummary{
		Assets:      decimal.Zero,
		Liabilities: decimal.Zero,
	}
	for _, account := range accounts {
		if account.IsLiability {
			summary.Liabilities = summary.Liabilities.Add(account.Balance)
		} else {
			summary.Assets = summary.Assets.Add(account.Balance)
		}
	}
	summary.NetWorth = summary.Assets.Sub(summary.Liabilities)
	return summary, nil
}

// CreateTransaction resolves the target account by name, then atomically
// applies the amount to the account balance and persists the transaction.
// The account is re-read inside the atomic unit: the resolution read may
// be stale by the time the unit runs, so its balance is never trusted for
// the write.
func (s *Service) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*Transaction, error) {
	if err := validateMutation(input.Type, input.Amount, input.Category); err != nil {
		return nil, err
	}

	resolved, err := s.repo.GetAccountByName(ctx, input.UserID, strings.TrimSpace(input.AccountName))
	if err != nil {
		return nil, err
	}

	transaction := Transaction{
		ID:          uuid.NewString(),
		UserID:      input.UserID,
		Type:        input.Type,
		Amount:      input.Amount,
		Category:    strings.TrimSpace(input.Category),
		Description: strings.TrimSpace(input.Description),
		AccountID:   resolved.ID,
		AccountName: resolved.Name,
		Date:        input.Date,
	}

	err = s.repo.Atomic(ctx, func(tx Repository) error {
		account, err := tx.GetAccountByID(ctx, input.UserID, resolved.ID)
		if err != nil {
			if errors.Is(err, ErrAccountNotFound) {
				return ErrAccountMissing
			}
			return err
		}

		balance := account.Balance.Add(input.Type.Effect(input.Amount))
		if err := tx.UpdateAccountBalance(ctx, input.UserID, account.ID, balance); err != nil {
			return err
		}

		return tx.CreateTransaction(ctx, &transaction)
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(stream.Event{Collection: stream.CollectionTransactions, Action: stream.ActionCreated, EntityID: transaction.ID, UserID: input.UserID})
	s.events.Publish(stream.Event{Collection: stream.CollectionAccounts, Action: stream.ActionUpdated, EntityID: resolved.ID, UserID: input.UserID})
	return &transaction, nil
}

// UpdateTransaction rewrites a transaction's editable fields. When the
// amount or type changed, the old effect is reverted and the new one
// applied in the same unit, so an edit that flips both at once composes
// correctly and the balance never double-counts.
func (s *Service) UpdateTransaction(ctx context.Context, input UpdateTransactionInput) (*Transaction, error) {
	if err := validateMutation(input.Type, input.Amount, input.Category); err != nil {
		return nil, err
	}

	var updated Transaction
	var accountID string
	err := s.repo.Atomic(ctx, func(tx Repository) error {
		accountID = ""

		transaction, err := tx.GetTransactionByID(ctx, input.UserID, input.TransactionID)
		if err != nil {
			return err
		}

		monetaryChange := !transaction.Amount.Equal(input.Amount) || transaction.Type != input.Type
		if monetaryChange {
			account, err := tx.GetAccountByID(ctx, input.UserID, transaction.AccountID)
			switch {
			case err == nil:
				balance := account.Balance.
					Sub(transaction.Type.Effect(transaction.Amount)).
					Add(input.Type.Effect(input.Amount))
				if err := tx.UpdateAccountBalance(ctx, input.UserID, account.ID, balance); err != nil {
					return err
				}
				accountID = account.ID
			case errors.Is(err, ErrAccountNotFound):
				// Account is gone; the edit still applies, the
				// balance has nothing left to correct.
			default:
				return err
			}
		}

		transaction.Type = input.Type
		transaction.Amount = input.Amount
		transaction.Category = strings.TrimSpace(input.Category)
		transaction.Description = strings.TrimSpace(input.Description)
		transaction.Date = input.Date

		if err := tx.UpdateTransaction(ctx, transaction); err != nil {
			return err
		}

		updated = *transaction
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(stream.Event{Collection: stream.CollectionTransactions, Action: stream.ActionUpdated, EntityID: updated.ID, UserID: input.UserID})
	if accountID != "" {
		s.events.Publish(stream.Event{Collection: stream.CollectionAccounts, Action: stream.ActionUpdated, EntityID: accountID, UserID: input.UserID})
	}
	return &updated, nil
}

// DeleteTransaction reverts the transaction's effect on its account and
// removes it in one unit. If the account no longer exists the delete
// proceeds anyway: an orphaned transaction is worse than a balance that
// can no longer be corrected.
func (s *Service) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	var accountID string
	err := s.repo.Atomic(ctx, func(tx Repository) error {
		accountID = ""

		transaction, err := tx.GetTransactionByID(ctx, userID, transactionID)
		if err != nil {
			return err
		}

		account, err := tx.GetAccountByID(ctx, userID, transaction.AccountID)
		switch {
		case err == nil:
			balance := account.Balance.Sub(transaction.Type.Effect(transaction.Amount))
			if err := tx.UpdateAccountBalance(ctx, userID, account.ID, balance); err != nil {
				return err
			}
			accountID = account.ID
		case errors.Is(err, ErrAccountNotFound):
		default:
			return err
		}

		deleted, err := tx.DeleteTransaction(ctx, userID, transactionID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrTransactionNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.events.Publish(stream.Event{Collection: stream.CollectionTransactions, Action: stream.ActionDeleted, EntityID: transactionID, UserID: userID})
	if accountID != "" {
		s.events.Publish(stream.Event{Collection: stream.CollectionAccounts, Action: stream.ActionUpdated, EntityID: accountID, UserID: userID})
	}
	return nil
}

func (s *Service) ListTransactions(ctx context.Context, userID string, filter ListFilter) ([]Transaction, int64, error) {
	return s.repo.ListTransactions(ctx, userID, filter)
}

// validateMutation re-checks what callers are supposed to have validated.
// A value that drives a financial mutation is not trusted from outside
// the service boundary.
func validateMutation(transactionType TransactionType, amount decimal.Decimal, category string) error {
	if !transactionType.Valid() {
		return ErrInvalidTransactionType
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(category) == "" {
		return ErrCategoryRequired
	}
	return nil
}
