package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	ledgerdomain "finledger-go/internal/domain/ledger"
	"finledger-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type createTransactionRequest struct {
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Account     string          `json:"account"`
	Date        string          `json:"date"`
}

// Account is absent on purpose: transactions cannot move between accounts.
type updateTransactionRequest struct {
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

type transactionResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	AccountID   string          `json:"account_id"`
	Account     string          `json:"account"`
	Date        string          `json:"date"`
	CreatedAt   string          `json:"created_at"`
}

type transactionListResponse struct {
	Items []transactionResponse `json:"items"`
	Total int64                 `json:"total"`
}

func toTransactionResponse(transaction ledgerdomain.Transaction) transactionResponse {
	return transactionResponse{
		ID:          transaction.ID,
		Type:        string(transaction.Type),
		Amount:      transaction.Amount,
		Category:    transaction.Category,
		Description: transaction.Description,
		AccountID:   transaction.AccountID,
		Account:     transaction.AccountName,
		Date:        formatDate(transaction.Date),
		CreatedAt:   transaction.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *Handlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	query := r.URL.Query()
	from, err := parseDateParam(query.Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid from date")
		return
	}
	to, err := parseDateParam(query.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid to date")
		return
	}
	limit, err := parseIntParam(query.Get("limit"), 50)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid limit")
		return
	}
	offset, err := parseIntParam(query.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid offset")
		return
	}

	filter := ledgerdomain.ListFilter{
		From:      from,
		To:        to,
		Category:  strings.TrimSpace(query.Get("category")),
		AccountID: strings.TrimSpace(query.Get("account_id")),
		Limit:     limit,
		Offset:    offset,
	}

	items, total, err := h.Ledger.ListTransactions(r.Context(), userID, filter)
	if err != nil {
		h.log.InternalError("transactions.list: failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]transactionResponse, 0, len(items))
	for _, transaction := range items {
		response = append(response, toTransactionResponse(transaction))
	}
	writeJSON(w, http.StatusOK, transactionListResponse{Items: response, Total: total})
}

func (h *Handlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	date, err := parseDateRequired(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid date")
		return
	}
	if strings.TrimSpace(req.Account) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "account is required")
		return
	}

	transaction, err := h.Ledger.CreateTransaction(r.Context(), ledgerdomain.CreateTransactionInput{
		UserID:      userID,
		Type:        ledgerdomain.TransactionType(req.Type),
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		AccountName: req.Account,
		Date:        date,
	})
	if err != nil {
		h.writeLedgerError(w, err, "transactions.create", userID)
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionResponse(*transaction))
}

func (h *Handlers) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req updateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	date, err := parseDateRequired(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid date")
		return
	}

	transaction, err := h.Ledger.UpdateTransaction(r.Context(), ledgerdomain.UpdateTransactionInput{
		UserID:        userID,
		TransactionID: chi.URLParam(r, "id"),
		Type:          ledgerdomain.TransactionType(req.Type),
		Amount:        req.Amount,
		Category:      req.Category,
		Description:   req.Description,
		Date:          date,
	})
	if err != nil {
		h.writeLedgerError(w, err, "transactions.update", userID)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponse(*transaction))
}

func (h *Handlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Ledger.DeleteTransaction(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		h.writeLedgerError(w, err, "transactions.delete", userID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) writeLedgerError(w http.ResponseWriter, err error, op, userID string) {
	switch {
	case errors.Is(err, ledgerdomain.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "invalid_request", "amount must be positive")
	case errors.Is(err, ledgerdomain.ErrInvalidTransactionType):
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid transaction type")
	case errors.Is(err, ledgerdomain.ErrCategoryRequired):
		writeError(w, http.StatusBadRequest, "invalid_request", "category is required")
	case errors.Is(err, ledgerdomain.ErrAccountNotFound):
		h.log.BusinessError(op+": account not found", err, "user_id", userID)
		writeError(w, http.StatusNotFound, "account_not_found", "account not found")
	case errors.Is(err, ledgerdomain.ErrAccountAmbiguous):
		h.log.BusinessError(op+": ambiguous account name", err, "user_id", userID)
		writeError(w, http.StatusConflict, "account_ambiguous", "account name matches more than one account")
	case errors.Is(err, ledgerdomain.ErrAccountMissing):
		h.log.BusinessError(op+": account missing", err, "user_id", userID)
		writeError(w, http.StatusConflict, "account_missing", "account no longer exists")
	case errors.Is(err, ledgerdomain.ErrTransactionNotFound):
		h.log.BusinessError(op+": transaction not found", err, "user_id", userID)
		writeError(w, http.StatusNotFound, "transaction_not_found", "transaction not found")
	case errors.Is(err, ledgerdomain.ErrTransactionConflict):
		h.log.BusinessError(op+": conflict retries exhausted", err, "user_id", userID)
		writeError(w, http.StatusConflict, "transaction_conflict", "concurrent update, please retry")
	default:
		h.log.InternalError(op+": failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
