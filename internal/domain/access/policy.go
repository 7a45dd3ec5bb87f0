package access

import (
	"context"
	"strings"

	"finance-tracker/internal/domain/errs"
)

type Role string

const (
	RoleStandard Role = "standard"
	RoleAdmin    Role = "admin"
)

// ParseRole maps any unrecognised value to RoleStandard.
func ParseRole(value string) Role {
	if strings.EqualFold(strings.TrimSpace(value), string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleStandard
}

type Caller struct {
	ID   string
	Role Role
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

type Resource int

const (
	ResourceCategory Resource = iota + 1
	ResourceExpense
	ResourceIncome
	ResourceBudget
)

func (r Resource) String() string {
	switch r {
	case ResourceCategory:
		return "category"
	case ResourceExpense:
		return "expense"
	case ResourceIncome:
		return "income"
	case ResourceBudget:
		return "budget"
	default:
		return "unknown"
	}
}

// Scope is the set of rows a caller may read. An empty OwnerID means every row.
type Scope struct {
	OwnerID string
}

func (s Scope) All() bool {
	return s.OwnerID == ""
}

func (s Scope) Allows(ownerID string) bool {
	return s.All() || s.OwnerID == ownerID
}

// Owned is implemented by every entity that records the identity that created it.
type Owned interface {
	OwnerID() string
}

// VisibleScope returns the readable row set for caller. Categories are global;
// owned resources are global only for admins.
func VisibleScope(caller Caller, resource Resource) Scope {
	if resource == ResourceCategory || caller.IsAdmin() {
		return Scope{}
	}
	return Scope{OwnerID: caller.ID}
}

// CanMutate ignores the role: admins read everything but write only their own rows.
func CanMutate(caller Caller, entity Owned) bool {
	if caller.ID == "" || entity == nil {
		return false
	}
	return entity.OwnerID() == caller.ID
}

func Authorize(caller Caller, entity Owned) error {
	if !CanMutate(caller, entity) {
		return errs.ErrPermissionDenied
	}
	return nil
}

type contextKey int

const callerKey contextKey = iota

func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

func CallerFromContext(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(callerKey).(Caller)
	if !ok || caller.ID == "" {
		return Caller{}, false
	}
	return caller, true
}
