package ledger

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// fakeLedgerRepo mimics the store's atomic-unit contract: Atomic runs fn
// against a staged copy of the data and commits it only when fn succeeds,
// so a failure inside the unit leaves the base state untouched. Conflicts
// can be injected to exercise the retry path.
type fakeLedgerRepo struct {
	accounts     map[string]Account
	transactions map[string]Transaction

	attempts         int
	pendingConflicts int
	atomicRuns       int
	beforeAtomic     func(*fakeLedgerRepo)
	failCreateTx     error
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{
		accounts:     make(map[string]Account),
		transactions: make(map[string]Transaction),
		attempts:     5,
	}
}

func (r *fakeLedgerRepo) clone() *fakeLedgerRepo {
	staged := newFakeLedgerRepo()
	staged.failCreateTx = r.failCreateTx
	for id, account := range r.accounts {
		staged.accounts[id] = account
	}
	for id, transaction := range r.transactions {
		staged.transactions[id] = transaction
	}
	return staged
}

func (r *fakeLedgerRepo) Atomic(ctx context.Context, fn func(Repository) error) error {
	if r.beforeAtomic != nil {
		r.beforeAtomic(r)
		r.beforeAtomic = nil
	}

	for attempt := 0; attempt < r.attempts; attempt++ {
		r.atomicRuns++
		staged := r.clone()
		if err := fn(staged); err != nil {
			return err
		}
		if r.pendingConflicts > 0 {
			r.pendingConflicts--
			continue
		}
		r.accounts = staged.accounts
		r.transactions = staged.transactions
		return nil
	}
	return ErrTransactionConflict
}

func (r *fakeLedgerRepo) CreateAccount(ctx context.Context, account *Account) error {
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	r.accounts[account.ID] = *account
	return nil
}

func (r *fakeLedgerRepo) GetAccountByID(ctx context.Context, userID, accountID string) (*Account, error) {
	account, ok := r.accounts[accountID]
	if !ok || account.UserID != userID {
		return nil, ErrAccountNotFound
	}
	result := account
	return &result, nil
}

func (r *fakeLedgerRepo) GetAccountByName(ctx context.Context, userID, name string) (*Account, error) {
	var matches []Account
	for _, account := range r.accounts {
		if account.UserID == userID && account.Name == name {
			matches = append(matches, account)
		}
	}

	switch len(matches) {
	case 0:
		return nil, ErrAccountNotFound
	case 1:
		result := matches[0]
		return &result, nil
	default:
		return nil, ErrAccountAmbiguous
	}
}

func (r *fakeLedgerRepo) ListAccounts(ctx context.Context, userID string) ([]Account, error) {
	var accounts []Account
	for _, account := range r.accounts {
		if account.UserID == userID {
			accounts = append(accounts, account)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (r *fakeLedgerRepo) UpdateAccount(ctx context.Context, account *Account) error {
	existing, ok := r.accounts[account.ID]
	if !ok || existing.UserID != account.UserID {
		return ErrAccountNotFound
	}
	existing.Name = account.Name
	existing.Institution = account.Institution
	existing.Color = account.Color
	r.accounts[account.ID] = existing
	return nil
}

func (r *fakeLedgerRepo) UpdateAccountBalance(ctx context.Context, userID, accountID string, balance decimal.Decimal) error {
	account, ok := r.accounts[accountID]
	if !ok || account.UserID != userID {
		return ErrAccountMissing
	}
	account.Balance = balance
	r.accounts[accountID] = account
	return nil
}

func (r *fakeLedgerRepo) CountAccountsByName(ctx context.Context, userID, name, excludeID string) (int64, error) {
	var count int64
	for _, account := range r.accounts {
		if account.UserID != userID || account.ID == excludeID {
			continue
		}
		if strings.EqualFold(account.Name, name) {
			count++
		}
	}
	return count, nil
}

func (r *fakeLedgerRepo) RenameAccountTransactions(ctx context.Context, userID, accountID, name string) error {
	for id, transaction := range r.transactions {
		if transaction.UserID == userID && transaction.AccountID == accountID {
			transaction.AccountName = name
			r.transactions[id] = transaction
		}
	}
	return nil
}

func (r *fakeLedgerRepo) CreateTransaction(ctx context.Context, transaction *Transaction) error {
	if r.failCreateTx != nil {
		return r.failCreateTx
	}
	if transaction.CreatedAt.IsZero() {
		transaction.CreatedAt = time.Now().UTC()
	}
	r.transactions[transaction.ID] = *transaction
	return nil
}

func (r *fakeLedgerRepo) GetTransactionByID(ctx context.Context, userID, transactionID string) (*Transaction, error) {
	transaction, ok := r.transactions[transactionID]
	if !ok || transaction.UserID != userID {
		return nil, ErrTransactionNotFound
	}
	result := transaction
	return &result, nil
}

func (r *fakeLedgerRepo) UpdateTransaction(ctx context.Context, transaction *Transaction) error {
	existing, ok := r.transactions[transaction.ID]
	if !ok || existing.UserID != transaction.UserID {
		return ErrTransactionNotFound
	}
	existing.Type = transaction.Type
	existing.Amount = transaction.Amount
	existing.Category = transaction.Category
	existing.Description = transaction.Description
	existing.Date = transaction.Date
	r.transactions[transaction.ID] = existing
	return nil
}

func (r *fakeLedgerRepo) DeleteTransaction(ctx context.Context, userID, transactionID string) (bool, error) {
	transaction, ok := r.transactions[transactionID]
	if !ok || transaction.UserID != userID {
		return false, nil
	}
	delete(r.transactions, transactionID)
	return true, nil
}

func (r *fakeLedgerRepo) ListTransactions(ctx context.Context, userID string, filter ListFilter) ([]Transaction, int64, error) {
	var items []Transaction
	for _, transaction := range r.transactions {
		if transaction.UserID != userID {
			continue
		}
		if filter.AccountID != "" && transaction.AccountID != filter.AccountID {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(transaction.Category, filter.Category) {
			continue
		}
		items = append(items, transaction)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, int64(len(items)), nil
}

const testUserID = "11111111-1111-1111-1111-111111111111"

func dec(value string) decimal.Decimal {
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func seedAccount(repo *fakeLedgerRepo, name, balance string) Account {
	account := Account{
		ID:      "acc-" + name,
		UserID:  testUserID,
		Name:    name,
		Type:    AccountTypeChecking,
		Balance: dec(balance),
		Color:   AccountTypeChecking.DefaultColor(),
	}
	repo.accounts[account.ID] = account
	return account
}

func seedTransaction(repo *fakeLedgerRepo, account Account, transactionType TransactionType, amount string) Transaction {
	transaction := Transaction{
		ID:          "txn-" + string(transactionType) + "-" + amount,
		UserID:      testUserID,
		Type:        transactionType,
		Amount:      dec(amount),
		Category:    "Groceries",
		AccountID:   account.ID,
		AccountName: account.Name,
		Date:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:   time.Now().UTC(),
	}
	repo.transactions[transaction.ID] = transaction
	return transaction
}

func mustBalance(t *testing.T, repo *fakeLedgerRepo, accountID, want string) {
	t.Helper()
	account, ok := repo.accounts[accountID]
	if !ok {
		t.Fatalf("account %s missing", accountID)
	}
	if !account.Balance.Equal(dec(want)) {
		t.Fatalf("balance = %s, want %s", account.Balance, want)
	}
}

func TestCreateTransactionExpenseReducesBalance(t *testing.T) {
	repo := newFakeLedgerRepo()
	account := seedAccount(repo, "A", "100")
	service := NewService(repo, nil)

	created, err := service.CreateTransaction(context.Background(), CreateTransactionInput{
		UserID:      testUserID,
		Type:        TransactionTypeExpense,
		Amount:      dec("40"),
		Category:    "Groceries",
		AccountName: "A",
		Date:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	mustBalance(t, repo, account.ID, "60")

	stored, ok := repo.transactions[created.ID]
	if !ok {
		t.Fatal("transaction not persisted")
	}
	if stored.Type != TransactionTypeExpense || !stored.Amount.Equal(dec("40")) {
		t.Fatalf("stored transaction = %+v", stored)
	}
	if stored.AccountID != account.ID || stored.AccountName != "A" {
		t.Fatalf("account reference = %s / %s", stored.AccountID, stored.AccountName)
	}
	if stored.CreatedAt.IsZero() {
		t.Fatal("created_at not assigned")
	}
}

func TestCreateTransactionIncomeIncreasesBalance(t *testing.T) {
	repo := newFakeLedgerRepo()
	account := seedAccount(repo, "A", "100")
	service := NewService(repo, nil)

	_, err := service.CreateTransaction(context.Background(), CreateTransactionInput{
		UserID:      testUserID,
		Type:        TransactionTypeIncome,
		Amount:      dec("25.50"),
		Category:    "Salary",
		AccountName: "A",
		Date:        time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	mustBalance(t, repo, account.ID, "125.50")
}

func TestCreateTransactionUnknownAccount(t *testing.T) {
	repo := newFakeLedgerRepo()
	account := seedAccount(repo, "A", "100")
	service := NewService(repo, nil)

	_, err := service.CreateTransaction(context.Background(), CreateTransactionInput{
		UserID:      testUserID,
		Type:        TransactionTypeExpense,
		Amount:      dec("40"),
		Category:    "Groceries",
		AccountName: "Nonexistent",
		Date:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("err = %v, want ErrAccountNotFound", err)
	}

	if len(repo.transactions) != 0 {
		t.Fatal("transaction was created despite failed resolution")
	}
	mustBalance(t, repo, account.ID, "100")
}

func TestCreateTransactionAmbiguousAccountName(t *testing.T) {
	repo := newFakeLedgerRepo()
	first := seedAccount(repo, "Shared", "10")
	second := first
	second.ID = "acc-Shared-2"
	repo.accounts[second.ID] = second
	service := NewService(repo, nil)

	_, err := service.CreateTransaction(context.Background(), CreateTransactionInput{
		UserID:      testUserID,
		Type:        TransactionTypeExpense,
		Amount:      dec("5"),
		Category:    "Misc",
		AccountName: "Shared",
		Date:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrAccountAmbiguous) {
		t.Fatalf("err = %v, want ErrAccountAmbiguous", err)
	}
}

func TestCreateTransactionRejectsBadInput(t *testing.T) {
	repo := newFakeLedgerRepo()
	seedAccount(repo, "A", "100")
	service := NewService(repo, nil)
	date := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		input CreateTransactionInput
		want  error
	}{
		{
			name:  "zero amount",
			input: CreateTransactionInput{UserID: testUserID, Type: TransactionTypeExpense, Amount: decimal.Zero, Category: "Groceries", AccountName: "A", Date: date},
			want:  ErrInvalidAmount,
		},
		{
			name:  "negative amount",
			input: CreateTransactionInput{UserID: testUserID, Type: TransactionTypeExpense, Amount: dec("-5"), Category: "Groceries", AccountName: "A", Date: date},
			want:  ErrInvalidAmount,
		},
		{
			name:  "unknown type",
			input: CreateTransactionInput{UserID: testUserID, Type: "Transfer", Amount: dec("5"), Category: "Groceries", AccountName: "A", Date: date},
			want:  ErrInvalidTransactionType,
		},
		{
			name:  "blank category",
			input: CreateTransactionInput{UserID: testUserID, Type: TransactionTypeExpense, Amount: dec("5"), Category: "  ", AccountName: "A", Date: date},
			want:  ErrCategoryRequired,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.CreateTransaction(context.Background(), tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}

	if len(repo.transactions) != 0 {
		t.Fatal("invalid input produced a transaction")
	}
}

func TestCreateTransactionAccountVanishedBeforeCommit(t *testing.T) {
	repo := newFakeLedgerRepo()
	account := seedAccount(repo, "A", "100")
	// The resolution read succeeds, then the account disappears before
	// the atomic unit re-reads it.
	repo.beforeAtomic = func(r *fakeLedgerRepo) {
		delete(r.accounts, account.ID)
	}
	service := NewService(repo, nil)

	_, err := service.CreateTransaction(context.Background(), CreateTransactionInput{
		UserID:      testUserID,
		Type:        TransactionTypeExpense,
		Amount:      dec("40"),
		Category:    "Groceries",
		AccountName: "A",
		Date:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrAccountMissing) {
		t.Fatalf("err = %v, want ErrAccountMissing", err)
	}
	if len(repo.transactions) != 0 {
		t.Fatal("transaction persisted despite missing account")
	}
}

func TestCreateTransactionAbortLeavesNoPartialState(t *testing.T) {
	repo := newFakeLedgerRepo()
	account := seedAccount(repo, "A", "100")
	injected := errors.New("store fault")
	// Fault between the balance write and the transaction write: the
	// balance write already happened inside the staged unit, so the
	// commit must discard it.
	repo.failCreateTx = injected
	service := NewService(repo, nil)

	_, err := service.CreateTransaction(context.Background(), CreateTransactionInput{
		UserID:      testUserID,
		Type:        TransactionTypeExpense,
		Amount:      dec("40"),
		Category:    "Groceries",
		AccountName: "A",
		Date:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, injected) {
		t.Fatalf("err = %v, want injected fault", err)
	}

	mustBalance(t, repo, account.ID, "100")
	if len(repo.transactions) != 0 {
		t.Fatal("transaction persisted despite aborted unit")
	}
}

func TestCreateTransactionRetriesOnConflict(t *testing.T) {
	repo := newFakeLedgerRepo()
	account := seedAccount(repo, "A", "100")
	repo.pendingConflicts = 2
	service := NewService(repo, nil)

	_, err := service.CreateTransaction(context.Background(), CreateTransactionInput{
		UserID:      testUserID,
		Type:        TransactionTypeExpense,
		Amount:      dec("40"),
		Category:    "Groceries",
		AccountName: "A",
		Date:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if repo.atomicRuns != 3 {
		t.Fatalf("atomic unit ran %d times, want 3", repo.atomicRuns)
	}
	mustBalance(t, repo, account.ID, "60")
}

func TestCreateTransactionConflictExhaustion(t *testing.T) {
	repo := newFakeLedgerRepo()
	account := seedAccount(repo, "A", "100")
	repo.pendingConflicts = 100
	service := NewService(repo, nil)

	_, err := service.CreateTransaction(context.Background(), CreateTransactionInput{
		UserID:      testUserID,
		Type:        TransactionTypeExpense,
		Amount:      dec("40"),
		Category:    "Groceries",
		AccountName: "A",
		Date:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrTransactionConflict) {
		t.Fatalf("err = %v, want ErrTransactionConflict", err)
	}
	mustBalance(t, repo, account.ID, "100")
	if len(repo.transactions) != 0 {
		t.Fatal("transaction persisted despite exhausted retries")
	}
}

func TestUpdateTransactionRevertThenReapply(t *testing.T) {
	repo := newFakeLedgerRepo()
	account := seedAccount(repo, "A", "100")
	transaction := seedTransaction(repo, account, TransactionTypeExpense, "50")
	service := NewService(repo, nil)

	// Flipping both amount and type at once: revert the expense of 50
	// (+50), apply income of 30 (+30).
	updated, err := service.UpdateTransaction(context.Background(), UpdateTransactionInput{
		UserID:        testUserID,
		TransactionID: transaction.ID,
		Type:          TransactionTypeIncome,
		Amount:        dec("30"),
		Category:      "Refund",
		Date:          time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	mustBalance(t, repo, account.ID, "180")
	if updated.Type != TransactionTypeIncome || !updated.Amount.Equal(dec("30")) {
		t.Fatalf("updated = %+v", updated)
	}
	if updated.Category != "Refund" {
		t.Fatalf("category = %s", updated.Category)
	}
}

func TestUpdateTransactionNonMonetarySkipsBalance(t *testing.T) {
	repo := newFakeLedgerRepo()
	account := seedAccount(repo, "A", "100")
	transaction := seedTransaction(repo, account, TransactionTypeExpense, "50")
	service := NewService(repo, nil)

	updated, err := service.UpdateTransaction(context.Background(), UpdateTransactionInput{
		UserID:        testUserID,
		TransactionID: transaction.ID,
		Type:          TransactionTypeExpense,
		Amount:        dec("50"),
		Category:      "Dining Out",
		Description:   "team lunch",
		Date:          time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	mustBalance(t, repo, account.ID, "100")
	if updated.Category != "Dining Out" || updated.Description != "team lunch" {
		t.Fatalf("updated = %+v", updated)
	}
}

func TestUpdateTransactionNotFound(t *testing.T) {
	repo := newFakeLedgerRepo()
	seedAccount(repo, "A", "100")
	service := NewService(repo, nil)

	_, err := service.UpdateTransaction(context.Background(), UpdateTransactionInput{
		UserID:        testUserID,
		TransactionID: "missing",
		Type:          TransactionTypeExpense,
		Amount:        dec("10"),
		Category:      "Groceries",
		Date:          time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("err = %v, want ErrTransactionNotFound", err)
	}
}

func TestUpdateTransactionAccountGoneStillUpdates(t *testing.T) {
	repo := newFakeLedgerRepo()
	account := seedAccount(repo, "A", "100")
	transaction := seedTransaction(repo, account, TransactionTypeExpense, "50")
	delete(repo.accounts, account.ID)
	service := NewService(repo, nil)

	updated, err := service.UpdateTransaction(context.Background(), UpdateTransactionInput{
		UserID:        testUserID,
		TransactionID: transaction.ID,
		Type:          TransactionTypeIncome,
		Amount:        dec("30"),
		Category:      "Refund",
		Date:          time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Type != TransactionTypeIncome {
		t.Fatalf("updated = %+v", updated)
	}
}

func TestDeleteTransactionRestoresBalance(t *testing.T) {
	repo := newFakeLedgerRepo()
	account := seedAccount(repo, "A", "100")
	service := NewService(repo, nil)

	created, err := service.CreateTransaction(context.Background(), CreateTransactionInput{
		UserID:      testUserID,
		Type:        TransactionTypeExpense,
		Amount:      dec("40"),
		Category:    "Groceries",
		AccountName: "A",
		Date:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	mustBalance(t, repo, account.ID, "60")

	if err := service.DeleteTransaction(context.Background(), testUserID, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	mustBalance(t, repo, account.ID, "100")
	if len(repo.transactions) != 0 {
		t.Fatal("transaction still present after delete")
	}
}

func TestDeleteTransactionTwice(t *testing.T) {
	repo := newFakeLedgerRepo()
	account := seedAccount(repo, "A", "100")
	transaction := seedTransaction(repo, account, TransactionTypeIncome, "20")
	account.Balance = dec("120")
	repo.accounts[account.ID] = account
	service := NewService(repo, nil)

	if err := service.DeleteTransaction(context.Background(), testUserID, transaction.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	mustBalance(t, repo, account.ID, "100")

	err := service.DeleteTransaction(context.Background(), testUserID, transaction.ID)
	if !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("second delete err = %v, want ErrTransactionNotFound", err)
	}
	// A failed re-delete must not move any balance.
	mustBalance(t, repo, account.ID, "100")
}

func TestDeleteTransactionAccountGone(t *testing.T) {
	repo := newFakeLedgerRepo()
	account := seedAccount(repo, "A", "100")
	transaction := seedTransaction(repo, account, TransactionTypeExpense, "50")
	delete(repo.accounts, account.ID)
	service := NewService(repo, nil)

	if err := service.DeleteTransaction(context.Background(), testUserID, transaction.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.transactions) != 0 {
		t.Fatal("orphaned transaction left behind")
	}
}

// The ledger invariant: after any quiet point, balance equals the initial
// balance plus the signed effects of the transactions still present.
func TestBalanceSumConsistencyAcrossSequence(t *testing.T) {
	repo := newFakeLedgerRepo()
	account := seedAccount(repo, "A", "250")
	service := NewService(repo, nil)
	ctx := context.Background()
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	first, err := service.CreateTransaction(ctx, CreateTransactionInput{UserID: testUserID, Type: TransactionTypeExpense, Amount: dec("75.25"), Category: "Groceries", AccountName: "A", Date: date})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := service.CreateTransaction(ctx, CreateTransactionInput{UserID: testUserID, Type: TransactionTypeIncome, Amount: dec("1200"), Category: "Salary", AccountName: "A", Date: date})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := service.UpdateTransaction(ctx, UpdateTransactionInput{UserID: testUserID, TransactionID: first.ID, Type: TransactionTypeExpense, Amount: dec("100"), Category: "Groceries", Date: date}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := service.DeleteTransaction(ctx, testUserID, second.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	expected := dec("250")
	for _, transaction := range repo.transactions {
		expected = expected.Add(transaction.Type.Effect(transaction.Amount))
	}
	account2 := repo.accounts[account.ID]
	if !account2.Balance.Equal(expected) {
		t.Fatalf("balance = %s, want %s (sum of active effects)", account2.Balance, expected)
	}
	if !account2.Balance.Equal(dec("150")) {
		t.Fatalf("balance = %s, want 150", account2.Balance)
	}
}

func TestCreateAccountDerivesLiabilityAndColor(t *testing.T) {
	repo := newFakeLedgerRepo()
	service := NewService(repo, nil)

	account, err := service.CreateAccount(context.Background(), CreateAccountInput{
		UserID:  testUserID,
		Name:    "Visa",
		Type:    AccountTypeCreditCard,
		Balance: dec("430"),
	})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	if !account.IsLiability {
		t.Fatal("credit card account should be a liability")
	}
	if account.Color != AccountTypeCreditCard.DefaultColor() {
		t.Fatalf("color = %s", account.Color)
	}

	_, err = service.CreateAccount(context.Background(), CreateAccountInput{
		UserID:  testUserID,
		Name:    "visa",
		Type:    AccountTypeChecking,
		Balance: decimal.Zero,
	})
	if !errors.Is(err, ErrAccountNameTaken) {
		t.Fatalf("err = %v, want ErrAccountNameTaken", err)
	}

	_, err = service.CreateAccount(context.Background(), CreateAccountInput{
		UserID: testUserID,
		Name:   "Broker",
		Type:   "Brokerage",
	})
	if !errors.Is(err, ErrInvalidAccountType) {
		t.Fatalf("err = %v, want ErrInvalidAccountType", err)
	}
}

func TestUpdateAccountRenameRewritesTransactions(t *testing.T) {
	repo := newFakeLedgerRepo()
	account := seedAccount(repo, "Old Name", "100")
	transaction := seedTransaction(repo, account, TransactionTypeExpense, "10")
	service := NewService(repo, nil)

	newName := "New Name"
	updated, err := service.UpdateAccount(context.Background(), UpdateAccountInput{
		UserID:    testUserID,
		AccountID: account.ID,
		Name:      &newName,
	})
	if err != nil {
		t.Fatalf("update account: %v", err)
	}
	if updated.Name != newName {
		t.Fatalf("name = %s", updated.Name)
	}
	if got := repo.transactions[transaction.ID].AccountName; got != newName {
		t.Fatalf("transaction account name = %s, want %s", got, newName)
	}
}

func TestNetWorthSplitsAssetsAndLiabilities(t *testing.T) {
	repo := newFakeLedgerRepo()
	checking := seedAccount(repo, "Checking", "100")
	_ = checking
	card := Account{
		ID:          "acc-card",
		UserID:      testUserID,
		Name:        "Visa",
		Type:        AccountTypeCreditCard,
		Balance:     dec("40"),
		IsLiability: true,
	}
	repo.accounts[card.ID] = card
	service := NewService(repo, nil)

	summary, err := service.NetWorth(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("net worth: %v", err)
	}
	if !summary.Assets.Equal(dec("100")) || !summary.Liabilities.Equal(dec("40")) || !summary.NetWorth.Equal(dec("60")) {
		t.Fatalf("summary = %+v", summary)
	}
}
