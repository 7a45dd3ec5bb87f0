package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finance-tracker/internal/config"
	"finance-tracker/internal/db/dbtest"
	"finance-tracker/internal/domain/access"
	authmw "finance-tracker/internal/transport/httpserver/middleware"
	"finance-tracker/pkg/logger"
)

var testAuth = config.AuthConfig{JWTSecret: "app-test-secret", JWTIssuer: "finance-tracker"}

type testEnv struct {
	t       *testing.T
	handler http.Handler
	tokens  map[string]string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := config.Config{
		RequestTimeout:     10 * time.Second,
		CategoriesCacheTTL: time.Minute,
		DB:                 config.DBConfig{Driver: config.DriverSQLite},
		Auth:               testAuth,
	}
	env := &testEnv{
		t:       t,
		handler: NewHandler(cfg, dbtest.Open(t), logger.Discard()),
		tokens:  make(map[string]string),
	}

	for id, role := range map[string]access.Role{
		"alice": access.RoleStandard,
		"bob":   access.RoleStandard,
		"root":  access.RoleAdmin,
	} {
		token, err := authmw.IssueToken(testAuth, access.Caller{ID: id, Role: role}, time.Hour)
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		env.tokens[id] = token
	}
	return env
}

func (e *testEnv) do(user, method, path string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			e.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("Authorization", "Bearer "+e.tokens[user])
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) expect(rec *httptest.ResponseRecorder, status int, dst interface{}) {
	e.t.Helper()
	if rec.Code != status {
		e.t.Fatalf("expected status %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
	if dst != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
			e.t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
		}
	}
}

type idResponse struct {
	ID uint `json:"id"`
}

func (e *testEnv) createCategory(user, name string, isExpense bool) uint {
	e.t.Helper()
	var created idResponse
	e.expect(e.do(user, http.MethodPost, "/api/categories", map[string]interface{}{
		"name":       name,
		"is_expense": isExpense,
	}), http.StatusCreated, &created)
	return created.ID
}

func (e *testEnv) createExpense(user string, category uint, amount, date, description string) uint {
	e.t.Helper()
	var created idResponse
	e.expect(e.do(user, http.MethodPost, "/api/expenses", map[string]interface{}{
		"category":    category,
		"amount":      amount,
		"date":        date,
		"description": description,
	}), http.StatusCreated, &created)
	return created.ID
}

type expenseBody struct {
	ID           uint   `json:"id"`
	User         string `json:"user"`
	CategoryName string `json:"category_name"`
	Amount       string `json:"amount"`
	Description  string `json:"description"`
	Date         string `json:"date"`
}

type summaryBody struct {
	Period struct {
		Year      int    `json:"year"`
		Month     int    `json:"month"`
		MonthName string `json:"month_name"`
	} `json:"period"`
	Total      string `json:"total"`
	ByCategory []struct {
		CategoryName string  `json:"category__name"`
		Total        string  `json:"total"`
		Count        int64   `json:"count"`
		Percentage   float64 `json:"percentage"`
	} `json:"by_category"`
	DailyTotals []struct {
		Date  string `json:"date"`
		Total string `json:"total"`
	} `json:"daily_totals"`
}

func TestMonthlySummaryScopedByRole(t *testing.T) {
	env := newTestEnv(t)
	food := env.createCategory("alice", "Food", true)
	env.createExpense("alice", food, "50", "2024-03-05", "")
	env.createExpense("bob", food, "30", "2024-03-05", "")

	var own summaryBody
	env.expect(env.do("alice", http.MethodGet, "/api/expenses/monthly-summary?year=2024&month=3", nil), http.StatusOK, &own)
	if own.Total != "50.00" {
		t.Fatalf("expected total 50.00, got %s", own.Total)
	}
	if own.Period.Year != 2024 || own.Period.Month != 3 || own.Period.MonthName != "March" {
		t.Fatalf("unexpected period %+v", own.Period)
	}
	if len(own.ByCategory) != 1 || own.ByCategory[0].CategoryName != "Food" || own.ByCategory[0].Total != "50.00" ||
		own.ByCategory[0].Count != 1 || own.ByCategory[0].Percentage != 100 {
		t.Fatalf("unexpected by_category %+v", own.ByCategory)
	}
	if len(own.DailyTotals) != 1 || own.DailyTotals[0].Date != "2024-03-05" || own.DailyTotals[0].Total != "50.00" {
		t.Fatalf("unexpected daily_totals %+v", own.DailyTotals)
	}

	var all summaryBody
	env.expect(env.do("root", http.MethodGet, "/api/expenses/monthly-summary?year=2024&month=3", nil), http.StatusOK, &all)
	if all.Total != "80.00" {
		t.Fatalf("expected admin total 80.00, got %s", all.Total)
	}
	if len(all.ByCategory) != 1 || all.ByCategory[0].Total != "80.00" || all.ByCategory[0].Count != 2 || all.ByCategory[0].Percentage != 100 {
		t.Fatalf("unexpected admin by_category %+v", all.ByCategory)
	}
}

func TestMonthlySummaryEmptyAndInvalidPeriod(t *testing.T) {
	env := newTestEnv(t)

	var empty summaryBody
	env.expect(env.do("alice", http.MethodGet, "/api/expenses/monthly-summary?year=2030&month=1", nil), http.StatusOK, &empty)
	if empty.Total != "0.00" || empty.ByCategory == nil || len(empty.ByCategory) != 0 || empty.DailyTotals == nil {
		t.Fatalf("expected empty report with arrays, got %+v", empty)
	}

	for _, path := range []string{
		"/api/expenses/monthly-summary?year=abc",
		"/api/expenses/monthly-summary?year=2024&month=13",
		"/api/expenses/monthly-summary?year=2024&month=0",
	} {
		rec := env.do("alice", http.MethodGet, path, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, rec.Code)
		}
	}
}

func TestExpenseSearchMatchesDescriptionOrCategory(t *testing.T) {
	env := newTestEnv(t)
	food := env.createCategory("alice", "Seafood", true)
	other := env.createCategory("alice", "Rent", true)
	env.createExpense("alice", other, "10", "2024-03-01", "FOO fighters tickets")
	env.createExpense("alice", food, "20", "2024-03-02", "dinner")
	env.createExpense("alice", other, "30", "2024-03-03", "march rent")

	var items []expenseBody
	env.expect(env.do("alice", http.MethodGet, "/api/expenses?search=foo", nil), http.StatusOK, &items)
	if len(items) != 2 {
		t.Fatalf("expected 2 matches, got %+v", items)
	}
	for _, item := range items {
		if item.Description == "march rent" {
			t.Fatalf("unexpected match %+v", item)
		}
	}
}

func TestExpenseDateRangeIsInclusive(t *testing.T) {
	env := newTestEnv(t)
	food := env.createCategory("alice", "Food", true)
	env.createExpense("alice", food, "1", "2024-02-28", "feb")
	env.createExpense("alice", food, "2", "2024-03-15", "mid")
	env.createExpense("alice", food, "3", "2024-03-31", "last")

	var items []expenseBody
	env.expect(env.do("alice", http.MethodGet, "/api/expenses?date_from=2024-03-01&date_to=2024-03-31", nil), http.StatusOK, &items)
	if len(items) != 2 {
		t.Fatalf("expected 2 rows in March, got %+v", items)
	}
	if items[0].Date != "2024-03-31" || items[1].Date != "2024-03-15" {
		t.Fatalf("expected newest first, got %+v", items)
	}
}

func TestNonOwnerCannotUpdate(t *testing.T) {
	env := newTestEnv(t)
	food := env.createCategory("alice", "Food", true)
	expense := env.createExpense("alice", food, "12.50", "2024-03-05", "lunch")
	path := fmt.Sprintf("/api/expenses/%d", expense)

	rec := env.do("bob", http.MethodPatch, path, map[string]interface{}{"amount": "1"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected hidden row for standard non-owner, got %d", rec.Code)
	}
	rec = env.do("root", http.MethodPatch, path, map[string]interface{}{"amount": "1"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for admin non-owner, got %d", rec.Code)
	}
	rec = env.do("bob", http.MethodPatch, fmt.Sprintf("/api/categories/%d", food), map[string]interface{}{"name": "Mine"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 on shared category, got %d", rec.Code)
	}

	var got expenseBody
	env.expect(env.do("alice", http.MethodGet, path, nil), http.StatusOK, &got)
	if got.Amount != "12.50" || got.Description != "lunch" {
		t.Fatalf("expected expense unchanged, got %+v", got)
	}
}

func TestReplaceRequiresAllFieldsButPatchMerges(t *testing.T) {
	env := newTestEnv(t)
	food := env.createCategory("alice", "Food", true)
	expense := env.createExpense("alice", food, "12.50", "2024-03-05", "lunch")
	path := fmt.Sprintf("/api/expenses/%d", expense)

	rec := env.do("alice", http.MethodPut, path, map[string]interface{}{"amount": "99"})
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "validation_error") {
		t.Fatalf("expected validation error for partial PUT, got %d: %s", rec.Code, rec.Body.String())
	}

	var patched expenseBody
	env.expect(env.do("alice", http.MethodPatch, path, map[string]interface{}{
		"amount":        "99",
		"id":            12345,
		"user":          "mallory",
		"category_name": "ignored",
	}), http.StatusOK, &patched)
	if patched.ID != expense || patched.User != "alice" || patched.Amount != "99.00" || patched.Description != "lunch" || patched.CategoryName != "Food" {
		t.Fatalf("unexpected patch result %+v", patched)
	}

	rec = env.do("alice", http.MethodPatch, path, `{"amount":"1","colour":"red"}`)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "invalid_json") {
		t.Fatalf("expected invalid_json for unknown field, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCategoryDeleteRestrictedWhileReferenced(t *testing.T) {
	env := newTestEnv(t)
	food := env.createCategory("alice", "Food", true)
	expense := env.createExpense("alice", food, "5", "2024-03-05", "")
	categoryPath := fmt.Sprintf("/api/categories/%d", food)

	rec := env.do("alice", http.MethodDelete, categoryPath, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}

	env.expect(env.do("alice", http.MethodDelete, fmt.Sprintf("/api/expenses/%d", expense), nil), http.StatusNoContent, nil)
	env.expect(env.do("alice", http.MethodDelete, categoryPath, nil), http.StatusNoContent, nil)
	env.expect(env.do("alice", http.MethodGet, categoryPath, nil), http.StatusNotFound, nil)
}

func TestBudgetLifecycle(t *testing.T) {
	env := newTestEnv(t)
	food := env.createCategory("alice", "Food", true)

	var created struct {
		ID           uint   `json:"id"`
		CategoryName string `json:"category_name"`
		Amount       string `json:"amount"`
		Period       string `json:"period"`
		EndDate      string `json:"end_date"`
	}
	env.expect(env.do("alice", http.MethodPost, "/api/budgets", map[string]interface{}{
		"category":   food,
		"amount":     "400",
		"period":     "monthly",
		"start_date": "2024-03-01",
		"end_date":   "2024-03-31",
	}), http.StatusCreated, &created)
	if created.CategoryName != "Food" || created.Amount != "400.00" || created.Period != "monthly" {
		t.Fatalf("unexpected budget %+v", created)
	}

	path := fmt.Sprintf("/api/budgets/%d", created.ID)
	rec := env.do("alice", http.MethodPatch, path, map[string]interface{}{"end_date": "2024-02-01"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", rec.Code)
	}
	rec = env.do("alice", http.MethodPatch, path, map[string]interface{}{"period": "fortnightly"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown period, got %d", rec.Code)
	}

	var list []idResponse
	env.expect(env.do("bob", http.MethodGet, "/api/budgets", nil), http.StatusOK, &list)
	if len(list) != 0 {
		t.Fatalf("expected bob to see no budgets, got %+v", list)
	}
	env.expect(env.do("root", http.MethodGet, "/api/budgets", nil), http.StatusOK, &list)
	if len(list) != 1 {
		t.Fatalf("expected admin to see 1 budget, got %+v", list)
	}

	env.expect(env.do("alice", http.MethodDelete, path, nil), http.StatusNoContent, nil)
}

func TestRoutingBasics(t *testing.T) {
	env := newTestEnv(t)

	env.expect(env.do("", http.MethodGet, "/api/health", nil), http.StatusOK, nil)

	rec := env.do("", http.MethodGet, "/api/expenses", nil)
	if rec.Code != http.StatusUnauthorized || !strings.Contains(rec.Body.String(), "invalid_token") {
		t.Fatalf("expected 401 without token, got %d: %s", rec.Code, rec.Body.String())
	}

	var items []expenseBody
	env.expect(env.do("alice", http.MethodGet, "/api/expenses/", nil), http.StatusOK, &items)
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty array, got %+v", items)
	}
	env.expect(env.do("alice", http.MethodGet, "/api/incomes/", nil), http.StatusOK, nil)

	var me struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	}
	env.expect(env.do("root", http.MethodGet, "/api/auth/me", nil), http.StatusOK, &me)
	if me.ID != "root" || me.Role != "admin" {
		t.Fatalf("unexpected me %+v", me)
	}

	env.expect(env.do("alice", http.MethodGet, "/api/expenses/abc", nil), http.StatusNotFound, nil)
}

func TestIncomesAreSeparateFromExpenses(t *testing.T) {
	env := newTestEnv(t)
	salary := env.createCategory("alice", "Salary", false)

	env.expect(env.do("alice", http.MethodPost, "/api/incomes", map[string]interface{}{
		"category": salary,
		"amount":   "1000",
		"date":     "2024-03-01",
	}), http.StatusCreated, nil)

	var expenses, incomes []expenseBody
	env.expect(env.do("alice", http.MethodGet, "/api/expenses", nil), http.StatusOK, &expenses)
	env.expect(env.do("alice", http.MethodGet, "/api/incomes", nil), http.StatusOK, &incomes)
	if len(expenses) != 0 || len(incomes) != 1 || incomes[0].Amount != "1000.00" {
		t.Fatalf("unexpected ledgers expenses=%+v incomes=%+v", expenses, incomes)
	}

	var summary summaryBody
	env.expect(env.do("alice", http.MethodGet, "/api/expenses/monthly-summary?year=2024&month=3", nil), http.StatusOK, &summary)
	if summary.Total != "0.00" {
		t.Fatalf("expected incomes excluded from summary, got %s", summary.Total)
	}
}
