package transactions

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
	kind Kind
	repo Repository
	now  func() time.Time
}

func NewService(kind Kind, repo Repository) *Service {
	return &Service{kind: kind, repo: repo, now: time.Now}
}

func (s *Service) Kind() Kind {
	return s.kind
}

func (s *Service) scope(caller access.Caller) access.Scope {
	return access.VisibleScope(caller, s.kind.Resource())
}

func (s *Service) List(ctx context.Context, caller access.Caller, params ListParams) ([]Transaction, error) {
	filters := query.Scoped(s.scope(caller))
	if params.CategoryID != nil {
		filters = filters.With(query.Category(*params.CategoryID))
	}
	if params.DateFrom != nil {
		filters = filters.With(query.DateFrom(*params.DateFrom))
	}
	if params.DateTo != nil {
		filters = filters.With(query.DateTo(*params.DateTo))
	}
	if search := strings.TrimSpace(params.Search); search != "" {
		filters = filters.With(query.Search(search))
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
		return []Transaction{}, nil
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, caller access.Caller, id uint) (*Transaction, error) {
	return s.repo.GetByID(ctx, s.scope(caller), id)
}

func (s *Service) Create(ctx context.Context, caller access.Caller, input CreateInput) (*Transaction, error) {
	if err := money.Validate(input.Amount); err != nil {
		return nil, err
	}
	if input.Date.IsZero() {
		return nil, ErrDateRequired
	}

	item := Transaction{
		UserID:      caller.ID,
		CategoryID:  input.CategoryID,
		Amount:      input.Amount,
		Description: strings.TrimSpace(input.Description),
		Date:        truncateDay(input.Date),
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		name, err := s.categoryName(ctx, tx, item.CategoryID)
		if err != nil {
			return err
		}
		item.CategoryName = name
		return tx.Create(ctx, &item)
	})
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (s *Service) Update(ctx context.Context, caller access.Caller, id uint, input UpdateInput) (*Transaction, error) {
	var updated Transaction
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		item, err := tx.GetByID(ctx, s.scope(caller), id)
		if err != nil {
			return err
		}
		if err := access.Authorize(caller, item); err != nil {
			return err
		}
		if missing := input.missing(); len(missing) > 0 {
			return errs.MissingFields(missing...)
		}

		if input.Amount != nil {
			if err := money.Validate(*input.Amount); err != nil {
				return err
			}
			item.Amount = *input.Amount
		}
		if input.Date != nil {
			if input.Date.IsZero() {
				return ErrDateRequired
			}
			item.Date = truncateDay(*input.Date)
		}
		if input.Description != nil {
			item.Description = strings.TrimSpace(*input.Description)
		}
		if input.CategoryID != nil && *input.CategoryID != item.CategoryID {
			name, err := s.categoryName(ctx, tx, *input.CategoryID)
			if err != nil {
				return err
			}
			item.CategoryID = *input.CategoryID
			item.CategoryName = name
		}
		item.UpdatedAt = s.now().UTC()

		if err := tx.Update(ctx, item); err != nil {
			return err
		}

		updated = *item
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *Service) Delete(ctx context.Context, caller access.Caller, id uint) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		item, err := tx.GetByID(ctx, s.scope(caller), id)
		if err != nil {
			return err
		}
		if err := access.Authorize(caller, item); err != nil {
			return err
		}

		deleted, err := tx.Delete(ctx, item.ID)
		if err != nil {
			return err
		}
		if !deleted {
			return s.kind.NotFound()
		}
		return nil
	})
}

func (s *Service) categoryName(ctx context.Context, repo Repository, categoryID uint) (string, error) {
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
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}
