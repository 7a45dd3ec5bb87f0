package handler

import (
	"net/http"
	"strings"
	"time"

	categoriesdomain "finance-tracker/internal/domain/categories"
	"finance-tracker/internal/domain/errs"
	"finance-tracker/internal/domain/query"
)

type categoryRequest struct {
	readOnlyFields
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsExpense   *bool   `json:"is_expense"`
}

type categoryResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsExpense   bool      `json:"is_expense"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toCategoryResponse(category categoriesdomain.Category) categoryResponse {
	return categoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		IsExpense:   category.IsExpense,
		CreatedBy:   category.CreatedBy,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	values := r.URL.Query()
	params := categoriesdomain.ListParams{
		Ordering: query.ParseOrdering(values.Get("ordering"), categoriesdomain.OrderFields, categoriesdomain.DefaultOrdering),
	}
	if raw := strings.TrimSpace(values.Get("is_expense")); raw != "" {
		flag := query.ParseBoolLiteral(raw)
		params.IsExpense = &flag
	}

	items, err := h.Categories.List(r.Context(), caller, params)
	if err != nil {
		h.writeDomainError(w, r, "categories.list", err, "user_id", caller.ID)
		return
	}

	response := make([]categoryResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toCategoryResponse(item))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetCategory(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, categoriesdomain.ErrCategoryNotFound)
	if err != nil {
		h.writeDomainError(w, r, "categories.get", err, "user_id", caller.ID)
		return
	}

	category, err := h.Categories.Get(r.Context(), caller, id)
	if err != nil {
		h.writeDomainError(w, r, "categories.get", err, "user_id", caller.ID, "category_id", id)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(*category))
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	if req.Name == nil {
		h.writeDomainError(w, r, "categories.create", errs.MissingFields("name"), "user_id", caller.ID)
		return
	}

	input := categoriesdomain.CreateInput{Name: *req.Name, IsExpense: true}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.IsExpense != nil {
		input.IsExpense = *req.IsExpense
	}

	created, err := h.Categories.Create(r.Context(), caller, input)
	if err != nil {
		h.writeDomainError(w, r, "categories.create", err, "user_id", caller.ID)
		return
	}
	writeJSON(w, http.StatusCreated, toCategoryResponse(*created))
}

// UpdateCategory handles PATCH.
func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	h.updateCategory(w, r, true)
}

// ReplaceCategory handles PUT.
func (h *Handlers) ReplaceCategory(w http.ResponseWriter, r *http.Request) {
	h.updateCategory(w, r, false)
}

func (h *Handlers) updateCategory(w http.ResponseWriter, r *http.Request, partial bool) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, categoriesdomain.ErrCategoryNotFound)
	if err != nil {
		h.writeDomainError(w, r, "categories.update", err, "user_id", caller.ID)
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}
	updated, err := h.Categories.Update(r.Context(), caller, id, categoriesdomain.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		IsExpense:   req.IsExpense,
		Replace:     !partial,
	})
	if err != nil {
		h.writeDomainError(w, r, "categories.update", err, "user_id", caller.ID, "category_id", id)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(*updated))
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, categoriesdomain.ErrCategoryNotFound)
	if err != nil {
		h.writeDomainError(w, r, "categories.delete", err, "user_id", caller.ID)
		return
	}

	if err := h.Categories.Delete(r.Context(), caller, id); err != nil {
		h.writeDomainError(w, r, "categories.delete", err, "user_id", caller.ID, "category_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
