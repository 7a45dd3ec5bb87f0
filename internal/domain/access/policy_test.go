package access

import (
	"context"
	"errors"
	"testing"

	"finance-tracker/internal/domain/errs"
)

type ownedRow string

func (o ownedRow) OwnerID() string {
	return string(o)
}

func TestVisibleScope(t *testing.T) {
	standard := Caller{ID: "user-1", Role: RoleStandard}
	admin := Caller{ID: "admin-1", Role: RoleAdmin}

	tests := []struct {
		name     string
		caller   Caller
		resource Resource
		wantAll  bool
	}{
		{"standard category", standard, ResourceCategory, true},
		{"admin category", admin, ResourceCategory, true},
		{"standard expense", standard, ResourceExpense, false},
		{"standard income", standard, ResourceIncome, false},
		{"standard budget", standard, ResourceBudget, false},
		{"admin expense", admin, ResourceExpense, true},
		{"admin income", admin, ResourceIncome, true},
		{"admin budget", admin, ResourceBudget, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope := VisibleScope(tt.caller, tt.resource)
			if scope.All() != tt.wantAll {
				t.Fatalf("expected all=%v, got scope %+v", tt.wantAll, scope)
			}
			if !tt.wantAll && scope.OwnerID != tt.caller.ID {
				t.Fatalf("expected owner %q, got %q", tt.caller.ID, scope.OwnerID)
			}
		})
	}
}

func TestScopeAllows(t *testing.T) {
	if !(Scope{}).Allows("anyone") {
		t.Fatalf("expected empty scope to allow every owner")
	}
	scope := Scope{OwnerID: "user-1"}
	if !scope.Allows("user-1") {
		t.Fatalf("expected owner allowed")
	}
	if scope.Allows("user-2") {
		t.Fatalf("expected other owner rejected")
	}
}

func TestCanMutateIgnoresRole(t *testing.T) {
	admin := Caller{ID: "admin-1", Role: RoleAdmin}
	standard := Caller{ID: "user-1", Role: RoleStandard}

	if CanMutate(admin, ownedRow("user-1")) {
		t.Fatalf("admin must not mutate another user's row")
	}
	if !CanMutate(admin, ownedRow("admin-1")) {
		t.Fatalf("admin must mutate own row")
	}
	if !CanMutate(standard, ownedRow("user-1")) {
		t.Fatalf("owner must mutate own row")
	}
	if CanMutate(standard, ownedRow("user-2")) {
		t.Fatalf("standard caller must not mutate another user's row")
	}
	if CanMutate(Caller{}, ownedRow("")) {
		t.Fatalf("anonymous caller must not mutate")
	}
}

func TestAuthorize(t *testing.T) {
	err := Authorize(Caller{ID: "admin-1", Role: RoleAdmin}, ownedRow("user-1"))
	if !errors.Is(err, errs.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if err := Authorize(Caller{ID: "user-1"}, ownedRow("user-1")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestParseRole(t *testing.T) {
	if ParseRole(" ADMIN ") != RoleAdmin {
		t.Fatalf("expected admin role")
	}
	if ParseRole("staff") != RoleStandard {
		t.Fatalf("expected unknown role to map to standard")
	}
}

func TestCallerContextRoundTrip(t *testing.T) {
	if _, ok := CallerFromContext(context.Background()); ok {
		t.Fatalf("expected no caller in empty context")
	}
	ctx := WithCaller(context.Background(), Caller{ID: "user-1", Role: RoleAdmin})
	caller, ok := CallerFromContext(ctx)
	if !ok || caller.ID != "user-1" || !caller.IsAdmin() {
		t.Fatalf("unexpected caller %+v", caller)
	}
}
