package handler

import (
	"errors"
	"net/http"
	"time"

	ledgerdomain "finledger-go/internal/domain/ledger"
	"finledger-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type createAccountRequest struct {
	Name        string          `json:"name"`
	Institution string          `json:"institution"`
	Type        string          `json:"type"`
	Balance     decimal.Decimal `json:"balance"`
}

type updateAccountRequest struct {
	Name        *string `json:"name"`
	Institution *string `json:"institution"`
	Color       *string `json:"color"`
}

type accountResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Institution string          `json:"institution"`
	Type        string          `json:"type"`
	Balance     decimal.Decimal `json:"balance"`
	IsLiability bool            `json:"is_liability"`
	Color       string          `json:"color"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

type accountListResponse struct {
	Items []accountResponse `json:"items"`
}

type netWorthResponse struct {
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
	NetWorth    decimal.Decimal `json:"net_worth"`
}

func toAccountResponse(account ledgerdomain.Account) accountResponse {
	return accountResponse{
		ID:          account.ID,
		Name:        account.Name,
		Institution: account.Institution,
		Type:        string(account.Type),
		Balance:     account.Balance,
		IsLiability: account.IsLiability,
		Color:       account.Color,
		CreatedAt:   account.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   account.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *Handlers) ListAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	accounts, err := h.Ledger.ListAccounts(r.Context(), userID)
	if err != nil {
		h.log.InternalError("accounts.list: failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	items := make([]accountResponse, 0, len(accounts))
	for _, account := range accounts {
		items = append(items, toAccountResponse(account))
	}
	writeJSON(w, http.StatusOK, accountListResponse{Items: items})
}

func (h *Handlers) CreateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req createAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	account, err := h.Ledger.CreateAccount(r.Context(), ledgerdomain.CreateAccountInput{
		UserID:      userID,
		Name:        req.Name,
		Institution: req.Institution,
		Type:        ledgerdomain.AccountType(req.Type),
		Balance:     req.Balance,
	})
	if err != nil {
		switch {
		case errors.Is(err, ledgerdomain.ErrNameRequired):
			writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		case errors.Is(err, ledgerdomain.ErrInvalidAccountType):
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid account type")
		case errors.Is(err, ledgerdomain.ErrAccountNameTaken):
			h.log.BusinessError("accounts.create: name taken", err, "user_id", userID)
			writeError(w, http.StatusConflict, "account_name_taken", "account name already in use")
		default:
			h.log.InternalError("accounts.create: failed", err, "user_id", userID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toAccountResponse(*account))
}

func (h *Handlers) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req updateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	account, err := h.Ledger.UpdateAccount(r.Context(), ledgerdomain.UpdateAccountInput{
		UserID:      userID,
		AccountID:   chi.URLParam(r, "id"),
		Name:        req.Name,
		Institution: req.Institution,
		Color:       req.Color,
	})
	if err != nil {
		switch {
		case errors.Is(err, ledgerdomain.ErrAccountNotFound):
			h.log.BusinessError("accounts.update: not found", err, "user_id", userID)
			writeError(w, http.StatusNotFound, "account_not_found", "account not found")
		case errors.Is(err, ledgerdomain.ErrNameRequired):
			writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		case errors.Is(err, ledgerdomain.ErrAccountNameTaken):
			h.log.BusinessError("accounts.update: name taken", err, "user_id", userID)
			writeError(w, http.StatusConflict, "account_name_taken", "account name already in use")
		case errors.Is(err, ledgerdomain.ErrTransactionConflict):
			h.log.BusinessError("accounts.update: conflict", err, "user_id", userID)
			writeError(w, http.StatusConflict, "transaction_conflict", "concurrent update, please retry")
		default:
			h.log.InternalError("accounts.update: failed", err, "user_id", userID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(*account))
}

func (h *Handlers) NetWorth(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	summary, err := h.Ledger.NetWorth(r.Context(), userID)
	if err != nil {
		h.log.InternalError("accounts.networth: failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, netWorthResponse{
		Assets:      summary.Assets,
		Liabilities: summary.Liabilities,
		NetWorth:    summary.NetWorth,
	})
}
