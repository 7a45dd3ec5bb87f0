package handler

import (
	"net/http"
	"time"

	"finance-tracker/internal/domain/errs"
	"finance-tracker/internal/domain/money"
	"finance-tracker/internal/domain/query"
	txdomain "finance-tracker/internal/domain/transactions"
	"github.com/shopspring/decimal"
)

type transactionRequest struct {
	readOnlyFields
	Category    *uint            `json:"category"`
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
	Date        *string          `json:"date"`
}

type transactionResponse struct {
	ID           uint      `json:"id"`
	User         string    `json:"user"`
	Category     uint      `json:"category"`
	CategoryName string    `json:"category_name"`
	Amount       string    `json:"amount"`
	Description  string    `json:"description"`
	Date         string    `json:"date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toTransactionResponse(item txdomain.Transaction) transactionResponse {
	return transactionResponse{
		ID:           item.ID,
		User:         item.UserID,
		Category:     item.CategoryID,
		CategoryName: item.CategoryName,
		Amount:       money.Format(item.Amount),
		Description:  item.Description,
		Date:         formatDate(item.Date),
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

// ListTransactions serves GET for the ledger behind svc (expenses or incomes).
func (h *Handlers) ListTransactions(svc *txdomain.Service) http.HandlerFunc {
	op := svc.Kind().Table() + ".list"
	return func(w http.ResponseWriter, r *http.Request) {
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
		from, err := parseDateParam(values.Get("date_from"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid date_from")
			return
		}
		to, err := parseDateParam(values.Get("date_to"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid date_to")
			return
		}

		items, err := svc.List(r.Context(), caller, txdomain.ListParams{
			CategoryID: categoryID,
			DateFrom:   from,
			DateTo:     to,
			Search:     values.Get("search"),
			Ordering:   query.ParseOrdering(values.Get("ordering"), txdomain.OrderFields, txdomain.DefaultOrdering),
		})
		if err != nil {
			h.writeDomainError(w, r, op, err, "user_id", caller.ID)
			return
		}

		response := make([]transactionResponse, 0, len(items))
		for _, item := range items {
			response = append(response, toTransactionResponse(item))
		}
		writeJSON(w, http.StatusOK, response)
	}
}

func (h *Handlers) GetTransaction(svc *txdomain.Service) http.HandlerFunc {
	op := svc.Kind().Table() + ".get"
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := h.caller(w, r)
		if !ok {
			return
		}

		id, err := pathID(r, svc.Kind().NotFound())
		if err != nil {
			h.writeDomainError(w, r, op, err, "user_id", caller.ID)
			return
		}

		item, err := svc.Get(r.Context(), caller, id)
		if err != nil {
			h.writeDomainError(w, r, op, err, "user_id", caller.ID, "id", id)
			return
		}
		writeJSON(w, http.StatusOK, toTransactionResponse(*item))
	}
}

func (h *Handlers) CreateTransaction(svc *txdomain.Service) http.HandlerFunc {
	op := svc.Kind().Table() + ".create"
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := h.caller(w, r)
		if !ok {
			return
		}

		var req transactionRequest
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
		if req.Date == nil {
			missing = append(missing, "date")
		}
		if len(missing) > 0 {
			h.writeDomainError(w, r, op, errs.MissingFields(missing...), "user_id", caller.ID)
			return
		}

		date, err := parseBodyDate("date", *req.Date)
		if err != nil {
			h.writeDomainError(w, r, op, err, "user_id", caller.ID)
			return
		}
		input := txdomain.CreateInput{
			CategoryID: *req.Category,
			Amount:     *req.Amount,
			Date:       date,
		}
		if req.Description != nil {
			input.Description = *req.Description
		}

		created, err := svc.Create(r.Context(), caller, input)
		if err != nil {
			h.writeDomainError(w, r, op, err, "user_id", caller.ID)
			return
		}
		writeJSON(w, http.StatusCreated, toTransactionResponse(*created))
	}
}

// UpdateTransaction serves PATCH when partial, PUT otherwise.
func (h *Handlers) UpdateTransaction(svc *txdomain.Service, partial bool) http.HandlerFunc {
	op := svc.Kind().Table() + ".update"
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := h.caller(w, r)
		if !ok {
			return
		}

		id, err := pathID(r, svc.Kind().NotFound())
		if err != nil {
			h.writeDomainError(w, r, op, err, "user_id", caller.ID)
			return
		}

		var req transactionRequest
		if err := decodeJSON(r, &req); err != nil {
			invalidJSON(w)
			return
		}

		input := txdomain.UpdateInput{
			CategoryID:  req.Category,
			Amount:      req.Amount,
			Description: req.Description,
			Replace:     !partial,
		}
		if req.Date != nil {
			date, err := parseBodyDate("date", *req.Date)
			if err != nil {
				h.writeDomainError(w, r, op, err, "user_id", caller.ID, "id", id)
				return
			}
			input.Date = &date
		}

		updated, err := svc.Update(r.Context(), caller, id, input)
		if err != nil {
			h.writeDomainError(w, r, op, err, "user_id", caller.ID, "id", id)
			return
		}
		writeJSON(w, http.StatusOK, toTransactionResponse(*updated))
	}
}

func (h *Handlers) DeleteTransaction(svc *txdomain.Service) http.HandlerFunc {
	op := svc.Kind().Table() + ".delete"
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := h.caller(w, r)
		if !ok {
			return
		}

		id, err := pathID(r, svc.Kind().NotFound())
		if err != nil {
			h.writeDomainError(w, r, op, err, "user_id", caller.ID)
			return
		}

		if err := svc.Delete(r.Context(), caller, id); err != nil {
			h.writeDomainError(w, r, op, err, "user_id", caller.ID, "id", id)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
