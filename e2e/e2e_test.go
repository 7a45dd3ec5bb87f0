//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"finance-tracker/internal/app"
	"finance-tracker/internal/config"
	"finance-tracker/internal/db"
	"finance-tracker/internal/domain/access"
	authmw "finance-tracker/internal/transport/httpserver/middleware"
	"finance-tracker/pkg/logger"
	"gorm.io/gorm"
)

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
	auth   config.AuthConfig
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	cfg := config.Config{
		RequestTimeout: 10 * time.Second,
		DB:             config.DBConfig{Driver: config.DriverPostgres, DSN: dsn, MaxOpenConns: 5, MaxIdleConns: 2},
		Auth:           config.AuthConfig{JWTSecret: "e2e-secret", JWTIssuer: "finance-tracker-e2e"},
	}
	log := logger.Discard()

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}

	if err := db.Migrate(dbConn, cfg.DB, log); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}

	server := httptest.NewServer(app.NewHandler(cfg, dbConn, log))
	env := &testEnv{server: server, db: dbConn, auth: cfg.Auth}
	t.Cleanup(env.Close)
	return env
}

func (e *testEnv) Close() {
	e.server.Close()
	sqlDB, err := e.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

func (e *testEnv) token(t *testing.T, id string, role access.Role) string {
	t.Helper()
	token, err := authmw.IssueToken(e.auth, access.Caller{ID: id, Role: role}, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func cleanDB(dbConn *gorm.DB) error {
	return dbConn.WithContext(context.Background()).Exec(
		"TRUNCATE TABLE budgets, expenses, incomes, categories, users RESTART IDENTITY CASCADE",
	).Error
}

func requestJSON(t *testing.T, client *http.Client, method, url, token string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	return resp, respBody
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type createdResponse struct {
	ID uint `json:"id"`
}

type summaryResponse struct {
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

func mustStatus(t *testing.T, resp *http.Response, body []byte, status int) {
	t.Helper()
	if resp.StatusCode != status {
		t.Fatalf("expected %d, got %d: %s", status, resp.StatusCode, string(body))
	}
}

func TestE2EExpensesAndMonthlySummary(t *testing.T) {
	env := setupE2E(t)
	client := env.server.Client()
	alice := env.token(t, "alice", access.RoleStandard)
	bob := env.token(t, "bob", access.RoleStandard)
	root := env.token(t, "root", access.RoleAdmin)

	resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/api/categories", alice, map[string]interface{}{
		"name": "Food",
	})
	mustStatus(t, resp, body, http.StatusCreated)
	var category createdResponse
	if err := json.Unmarshal(body, &category); err != nil {
		t.Fatalf("decode category: %v", err)
	}

	for _, entry := range []struct {
		token, amount, date string
	}{
		{alice, "50", "2024-03-05"},
		{bob, "30", "2024-03-05"},
		{alice, "7.25", "2024-02-28"},
	} {
		resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/expenses", entry.token, map[string]interface{}{
			"category": category.ID,
			"amount":   entry.amount,
			"date":     entry.date,
		})
		mustStatus(t, resp, body, http.StatusCreated)
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/expenses?date_from=2024-03-01&date_to=2024-03-31", alice, nil)
	mustStatus(t, resp, body, http.StatusOK)
	var own []createdResponse
	if err := json.Unmarshal(body, &own); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(own) != 1 {
		t.Fatalf("expected 1 March expense for alice, got %d", len(own))
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/expenses/monthly-summary?year=2024&month=3", alice, nil)
	mustStatus(t, resp, body, http.StatusOK)
	var summary summaryResponse
	if err := json.Unmarshal(body, &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.Total != "50.00" || len(summary.ByCategory) != 1 || summary.ByCategory[0].Percentage != 100 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if len(summary.DailyTotals) != 1 || summary.DailyTotals[0].Date != "2024-03-05" {
		t.Fatalf("unexpected daily totals %+v", summary.DailyTotals)
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/expenses/monthly-summary?year=2024&month=3", root, nil)
	mustStatus(t, resp, body, http.StatusOK)
	if err := json.Unmarshal(body, &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.Total != "80.00" || summary.ByCategory[0].Count != 2 {
		t.Fatalf("unexpected admin summary %+v", summary)
	}

	resp, body = requestJSON(t, client, http.MethodDelete, fmt.Sprintf("%s/api/categories/%d", env.server.URL, category.ID), alice, nil)
	mustStatus(t, resp, body, http.StatusConflict)
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if envelope.Error.Code != "conflict" {
		t.Fatalf("expected conflict code, got %q", envelope.Error.Code)
	}
}

func TestE2EUnauthorized(t *testing.T) {
	env := setupE2E(t)

	resp, body := requestJSON(t, env.server.Client(), http.MethodGet, env.server.URL+"/api/budgets", "", nil)
	mustStatus(t, resp, body, http.StatusUnauthorized)
}

func TestE2EMigrateTargetsConnectedDatabase(t *testing.T) {
	env := setupE2E(t)

	cfg := config.DBConfig{Driver: config.DriverPostgres, DSN: "ignored-by-migrate"}
	if err := db.Migrate(env.db, cfg, logger.Discard()); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	var version int
	if err := env.db.Raw("SELECT version FROM schema_migrations").Scan(&version).Error; err != nil {
		t.Fatalf("read schema_migrations from the app connection: %v", err)
	}
	if version != 1 {
		t.Fatalf("expected version 1, got %d", version)
	}

	sqlDB, err := env.db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		t.Fatalf("expected pool still open after migrate, got %v", err)
	}
}

func TestE2ESearchFoldsNonASCIICase(t *testing.T) {
	env := setupE2E(t)
	client := env.server.Client()
	alice := env.token(t, "alice", access.RoleStandard)

	resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/api/categories", alice, map[string]interface{}{
		"name": "Misc",
	})
	mustStatus(t, resp, body, http.StatusCreated)
	var category createdResponse
	if err := json.Unmarshal(body, &category); err != nil {
		t.Fatalf("decode category: %v", err)
	}

	for _, description := range []string{"CAFÉ CREME", "bakery"} {
		resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/expenses", alice, map[string]interface{}{
			"category":    category.ID,
			"amount":      "3.20",
			"date":        "2024-03-05",
			"description": description,
		})
		mustStatus(t, resp, body, http.StatusCreated)
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/expenses?search=caf%C3%A9", alice, nil)
	mustStatus(t, resp, body, http.StatusOK)
	var items []struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &items); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(items) != 1 || items[0].Description != "CAFÉ CREME" {
		t.Fatalf("expected case-insensitive match on non-ASCII text, got %+v", items)
	}
}
