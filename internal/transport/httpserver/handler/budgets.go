package handler

import (
	"errors"
	"net/http"
	"time"

	budgetsdomain "finledger-go/internal/domain/budgets"
	"finledger-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type createBudgetRequest struct {
	Category string          `json:"category"`
	Limit    decimal.Decimal `json:"limit"`
	Color    *string         `json:"color"`
}

type updateBudgetRequest struct {
	Category *string          `json:"category"`
	Limit    *decimal.Decimal `json:"limit"`
	Color    *string          `json:"color"`
}

type budgetResponse struct {
	ID        string           `json:"id"`
	Category  string           `json:"category"`
	Limit     decimal.Decimal  `json:"limit"`
	Spent     *decimal.Decimal `json:"spent,omitempty"`
	Color     string           `json:"color"`
	CreatedAt string           `json:"created_at"`
}

type budgetListResponse struct {
	Items []budgetResponse `json:"items"`
}

func toBudgetResponse(budget budgetsdomain.Budget) budgetResponse {
	return budgetResponse{
		ID:        budget.ID,
		Category:  budget.Category,
		Limit:     budget.Limit,
		Color:     budget.Color,
		CreatedAt: budget.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toBudgetWithSpentResponse(budget budgetsdomain.BudgetWithSpent) budgetResponse {
	response := toBudgetResponse(budget.Budget)
	spent := budget.Spent
	response.Spent = &spent
	return response
}

func (h *Handlers) ListBudgets(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	budgets, err := h.Budgets.ListBudgets(r.Context(), userID)
	if err != nil {
		h.log.InternalError("budgets.list: failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	items := make([]budgetResponse, 0, len(budgets))
	for _, budget := range budgets {
		items = append(items, toBudgetWithSpentResponse(budget))
	}
	writeJSON(w, http.StatusOK, budgetListResponse{Items: items})
}

func (h *Handlers) CreateBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req createBudgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	budget, err := h.Budgets.CreateBudget(r.Context(), budgetsdomain.CreateBudgetInput{
		UserID:   userID,
		Category: req.Category,
		Limit:    req.Limit,
		Color:    req.Color,
	})
	if err != nil {
		switch {
		case errors.Is(err, budgetsdomain.ErrCategoryRequired):
			writeError(w, http.StatusBadRequest, "invalid_request", "category is required")
		case errors.Is(err, budgetsdomain.ErrInvalidLimit):
			writeError(w, http.StatusBadRequest, "invalid_request", "limit must be positive")
		case errors.Is(err, budgetsdomain.ErrBudgetExists):
			h.log.BusinessError("budgets.create: duplicate category", err, "user_id", userID)
			writeError(w, http.StatusConflict, "budget_exists", "budget for this category already exists")
		default:
			h.log.InternalError("budgets.create: failed", err, "user_id", userID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toBudgetResponse(*budget))
}

func (h *Handlers) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req updateBudgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	budget, err := h.Budgets.UpdateBudget(r.Context(), budgetsdomain.UpdateBudgetInput{
		UserID:   userID,
		BudgetID: chi.URLParam(r, "id"),
		Category: req.Category,
		Limit:    req.Limit,
		Color:    req.Color,
	})
	if err != nil {
		switch {
		case errors.Is(err, budgetsdomain.ErrBudgetNotFound):
			h.log.BusinessError("budgets.update: not found", err, "user_id", userID)
			writeError(w, http.StatusNotFound, "budget_not_found", "budget not found")
		case errors.Is(err, budgetsdomain.ErrCategoryRequired):
			writeError(w, http.StatusBadRequest, "invalid_request", "category is required")
		case errors.Is(err, budgetsdomain.ErrInvalidLimit):
			writeError(w, http.StatusBadRequest, "invalid_request", "limit must be positive")
		case errors.Is(err, budgetsdomain.ErrBudgetExists):
			h.log.BusinessError("budgets.update: duplicate category", err, "user_id", userID)
			writeError(w, http.StatusConflict, "budget_exists", "budget for this category already exists")
		default:
			h.log.InternalError("budgets.update: failed", err, "user_id", userID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toBudgetResponse(*budget))
}

func (h *Handlers) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Budgets.DeleteBudget(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, budgetsdomain.ErrBudgetNotFound) {
			h.log.BusinessError("budgets.delete: not found", err, "user_id", userID)
			writeError(w, http.StatusNotFound, "budget_not_found", "budget not found")
			return
		}
		h.log.InternalError("budgets.delete: failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
