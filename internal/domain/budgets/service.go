package budgets

import (
	"context"
	"strings"
	"time"

	"finance-tracker/internal/domain/access"
	"finance-tracker/internal/domain/errs"
	"finance-tracker/internal/domain/money"
	"finance-tracker/internal/domain/query"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func scope(caller access.Caller) access.Scope {
	return access.VisibleScope(caller, access.ResourceBudget)
}

func (s *Service) List(ctx context.Context, caller access.Caller, params ListParams) ([]Budget, error) {
	filters := query.Scoped(scope(caller))
	if params.CategoryID != nil {
		filters = filters.With(query.Category(*params.CategoryID))
	}

	ordering := params.Ordering
	if len(ordering) == 0 {
		ordering = DefaultOrdering
	}

	items, err := s.repo.List(ctx, filters, ordering)
	if err != nil {
		return nil, err
	}
	if items == nil {
		return []Budget{}, nil
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, caller access.Caller, id uint) (*Budget, error) {
	return s.repo.GetByID(ctx, scope(caller), id)
}

func (s *Service) Create(ctx context.Context, caller access.Caller, input CreateInput) (*Budget, error) {
	budget := Budget{
		UserID:      caller.ID,
		CategoryID:  input.CategoryID,
		Description: strings.TrimSpace(input.Description),
		Amount:      input.Amount,
		Period:      input.Period,
		StartDate:   truncateDay(input.StartDate),
		EndDate:     truncateDay(input.EndDate),
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return nil, ErrDatesRequired
	}
	if err := validate(&budget); err != nil {
		return nil, err
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		name, err := categoryName(ctx, tx, budget.CategoryID)
		if err != nil {
			return err
		}
		budget.CategoryName = name
		return tx.Create(ctx, &budget)
	})
	if err != nil {
		return nil, err
	}

	return &budget, nil
}

func (s *Service) Update(ctx context.Context, caller access.Caller, id uint, input UpdateInput) (*Budget, error) {
	var updated Budget
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		budget, err := tx.GetByID(ctx, scope(caller), id)
		if err != nil {
			return err
		}
		if err := access.Authorize(caller, budget); err != nil {
			return err
		}
		if missing := input.missing(); len(missing) > 0 {
			return errs.MissingFields(missing...)
		}

		if input.Description != nil {
			budget.Description = strings.TrimSpace(*input.Description)
		}
		if input.Amount != nil {
			budget.Amount = *input.Amount
		}
		if input.Period != nil {
			budget.Period = *input.Period
		}
		if input.StartDate != nil {
			if input.StartDate.IsZero() {
				return ErrDatesRequired
			}
			budget.StartDate = truncateDay(*input.StartDate)
		}
		if input.EndDate != nil {
			if input.EndDate.IsZero() {
				return ErrDatesRequired
			}
			budget.EndDate = truncateDay(*input.EndDate)
		}
		if err := validate(budget); err != nil {
			return err
		}
		if input.CategoryID != nil && *input.CategoryID != budget.CategoryID {
			name, err := categoryName(ctx, tx, *input.CategoryID)
			if err != nil {
				return err
			}
			budget.CategoryID = *input.CategoryID
			budget.CategoryName = name
		}
		budget.UpdatedAt = s.now().UTC()

		if err := tx.Update(ctx, budget); err != nil {
			return err
		}

		updated = *budget
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *Service) Delete(ctx context.Context, caller access.Caller, id uint) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		budget, err := tx.GetByID(ctx, scope(caller), id)
		if err != nil {
			return err
		}
		if err := access.Authorize(caller, budget); err != nil {
			return err
		}

		deleted, err := tx.Delete(ctx, budget.ID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrBudgetNotFound
		}
		return nil
	})
}

// validate checks the merged budget, so a partial update cannot leave the
// stored range inverted.
func validate(budget *Budget) error {
	if err := money.Validate(budget.Amount); err != nil {
		return err
	}
	if !budget.Period.Valid() {
		return ErrInvalidPeriod
	}
	if budget.StartDate.After(budget.EndDate) {
		return ErrInvalidDateRange
	}
	return nil
}

func categoryName(ctx context.Context, repo Repository, categoryID uint) (string, error) {
	if categoryID == 0 {
		return "", ErrUnknownCategory
	}
	name, ok, err := repo.CategoryName(ctx, categoryID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrUnknownCategory
	}
	return name, nil
}

func truncateDay(value time.Time) time.Time {
	if value.IsZero() {
		return value
	}
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}
