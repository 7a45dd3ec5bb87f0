package handler

import (
	"net/http"
	"time"

	budgetsdomain "finance-tracker/internal/domain/budgets"
	"finance-tracker/internal/domain/errs"
	"finance-tracker/internal/domain/money"
	"finance-tracker/internal/domain/query"
	"github.com/shopspring/decimal"
)

type budgetRequest struct {
	readOnlyFields
	Category    *uint            `json:"category"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Period      *string          `json:"period"`
	StartDate   *string          `json:"start_date"`
	EndDate     *string          `json:"end_date"`
}

type budgetResponse struct {
	ID           uint      `json:"id"`
	User         string    `json:"user"`
	Category     uint      `json:"category"`
	CategoryName string    `json:"category_name"`
	Description  string    `json:"description"`
	Amount       string    `json:"amount"`
	Period       string    `json:"period"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toBudgetResponse(budget budgetsdomain.Budget) budgetResponse {
	return budgetResponse{
		ID:           budget.ID,
		User:         budget.UserID,
		Category:     budget.CategoryID,
		CategoryName: budget.CategoryName,
		Description:  budget.Description,
		Amount:       money.Format(budget.Amount),
		Period:       string(budget.Period),
		StartDate:    formatDate(budget.StartDate),
		EndDate:      formatDate(budget.EndDate),
		CreatedAt:    budget.CreatedAt,
		UpdatedAt:    budget.UpdatedAt,
	}
}

func (h *Handlers) ListBudgets(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	values := r.URL.Query()
	categoryID, err := parseUintParam(values.Get("category"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid category")
		return
	}

	items, err := h.Budgets.List(r.Context(), caller, budgetsdomain.ListParams{
		CategoryID: categoryID,
		Ordering:   query.ParseOrdering(values.Get("ordering"), budgetsdomain.OrderFields, budgetsdomain.DefaultOrdering),
	})
	if err != nil {
		h.writeDomainError(w, r, "budgets.list", err, "user_id", caller.ID)
		return
	}

	response := make([]budgetResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toBudgetResponse(item))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetBudget(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, budgetsdomain.ErrBudgetNotFound)
	if err != nil {
		h.writeDomainError(w, r, "budgets.get", err, "user_id", caller.ID)
		return
	}

	budget, err := h.Budgets.Get(r.Context(), caller, id)
	if err != nil {
		h.writeDomainError(w, r, "budgets.get", err, "user_id", caller.ID, "budget_id", id)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetResponse(*budget))
}

func (h *Handlers) CreateBudget(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	var missing []string
	if req.Category == nil {
		missing = append(missing, "category")
	}
	if req.Amount == nil {
		missing = append(missing, "amount")
	}
	if req.Period == nil {
		missing = append(missing, "period")
	}
	if req.StartDate == nil {
		missing = append(missing, "start_date")
	}
	if req.EndDate == nil {
		missing = append(missing, "end_date")
	}
	if len(missing) > 0 {
		h.writeDomainError(w, r, "budgets.create", errs.MissingFields(missing...), "user_id", caller.ID)
		return
	}

	start, err := parseBodyDate("start_date", *req.StartDate)
	if err != nil {
		h.writeDomainError(w, r, "budgets.create", err, "user_id", caller.ID)
		return
	}
	end, err := parseBodyDate("end_date", *req.EndDate)
	if err != nil {
		h.writeDomainError(w, r, "budgets.create", err, "user_id", caller.ID)
		return
	}

	input := budgetsdomain.CreateInput{
		CategoryID: *req.Category,
		Amount:     *req.Amount,
		Period:     budgetsdomain.Period(*req.Period),
		StartDate:  start,
		EndDate:    end,
	}
	if req.Description != nil {
		input.Description = *req.Description
	}

	created, err := h.Budgets.Create(r.Context(), caller, input)
	if err != nil {
		h.writeDomainError(w, r, "budgets.create", err, "user_id", caller.ID)
		return
	}
	writeJSON(w, http.StatusCreated, toBudgetResponse(*created))
}

// UpdateBudget handles PATCH.
func (h *Handlers) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	h.updateBudget(w, r, true)
}

// ReplaceBudget handles PUT.
func (h *Handlers) ReplaceBudget(w http.ResponseWriter, r *http.Request) {
	h.updateBudget(w, r, false)
}

func (h *Handlers) updateBudget(w http.ResponseWriter, r *http.Request, partial bool) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, budgetsdomain.ErrBudgetNotFound)
	if err != nil {
		h.writeDomainError(w, r, "budgets.update", err, "user_id", caller.ID)
		return
	}

	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	input := budgetsdomain.UpdateInput{
		CategoryID:  req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		Replace:     !partial,
	}
	if req.Period != nil {
		period := budgetsdomain.Period(*req.Period)
		input.Period = &period
	}
	if req.StartDate != nil {
		start, err := parseBodyDate("start_date", *req.StartDate)
		if err != nil {
			h.writeDomainError(w, r, "budgets.update", err, "user_id", caller.ID, "budget_id", id)
			return
		}
		input.StartDate = &start
	}
	if req.EndDate != nil {
		end, err := parseBodyDate("end_date", *req.EndDate)
		if err != nil {
			h.writeDomainError(w, r, "budgets.update", err, "user_id", caller.ID, "budget_id", id)
			return
		}
		input.EndDate = &end
	}

	updated, err := h.Budgets.Update(r.Context(), caller, id, input)
	if err != nil {
		h.writeDomainError(w, r, "budgets.update", err, "user_id", caller.ID, "budget_id", id)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetResponse(*updated))
}

func (h *Handlers) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, budgetsdomain.ErrBudgetNotFound)
	if err != nil {
		h.writeDomainError(w, r, "budgets.delete", err, "user_id", caller.ID)
		return
	}

	if err := h.Budgets.Delete(r.Context(), caller, id); err != nil {
		h.writeDomainError(w, r, "budgets.delete", err, "user_id", caller.ID, "budget_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
