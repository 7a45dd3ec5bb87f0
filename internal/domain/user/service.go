package user

import (
	"context"
	"fmt"

	"finance-tracker/internal/domain/access"
	"finance-tracker/internal/domain/errs"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Remember records the caller and its latest role.
func (s *Service) Remember(ctx context.Context, caller access.Caller) error {
	if caller.ID == "" {
		return fmt.Errorf("user id is required: %w", errs.ErrUnauthenticated)
	}
	role := caller.Role
	if role == "" {
		role = access.RoleStandard
	}

	return s.repo.UpsertUser(ctx, &User{UserID: caller.ID, Role: string(role)})
}
