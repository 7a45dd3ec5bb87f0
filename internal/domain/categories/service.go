package categories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"finance-tracker/internal/domain/access"
	"finance-tracker/internal/domain/errs"
	"finance-tracker/internal/domain/query"
)

type Service struct {
	repo     Repository
	cache    ListCache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewService(repo Repository) *Service {
	return NewServiceWithCache(repo, nil, 0)
}

func NewServiceWithCache(repo Repository, cache ListCache, ttl time.Duration) *Service {
	if cache == nil || ttl <= 0 {
		cache = noopListCache{}
	}
	return &Service{repo: repo, cache: cache, cacheTTL: ttl, now: time.Now}
}

func (s *Service) List(ctx context.Context, caller access.Caller, params ListParams) ([]Category, error) {
	filters := query.Scoped(access.VisibleScope(caller, access.ResourceCategory))
	if params.IsExpense != nil {
		filters = filters.With(query.IsExpense(*params.IsExpense))
	}

	ordering := params.Ordering
	if len(ordering) == 0 {
		ordering = DefaultOrdering
	}

	key := listKey(params.IsExpense, ordering)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	items, err := s.repo.List(ctx, filters, ordering)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Category{}
	}
	s.cache.Set(key, items, s.cacheTTL)
	return items, nil
}

func (s *Service) Get(ctx context.Context, caller access.Caller, id uint) (*Category, error) {
	return s.repo.GetByID(ctx, access.VisibleScope(caller, access.ResourceCategory), id)
}

func (s *Service) Create(ctx context.Context, caller access.Caller, input CreateInput) (*Category, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}

	category := Category{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		IsExpense:   input.IsExpense,
		CreatedBy:   caller.ID,
	}
	if err := s.repo.Create(ctx, &category); err != nil {
		return nil, err
	}
	s.cache.Purge()

	return &category, nil
}

func (s *Service) Update(ctx context.Context, caller access.Caller, id uint, input UpdateInput) (*Category, error) {
	var updated Category
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		category, err := tx.GetByID(ctx, access.VisibleScope(caller, access.ResourceCategory), id)
		if err != nil {
			return err
		}
		if err := access.Authorize(caller, category); err != nil {
			return err
		}
		if missing := input.missing(); len(missing) > 0 {
			return errs.MissingFields(missing...)
		}

		if input.Name != nil {
			name, err := validateName(*input.Name)
			if err != nil {
				return err
			}
			category.Name = name
		}
		if input.Description != nil {
			category.Description = strings.TrimSpace(*input.Description)
		}
		if input.IsExpense != nil {
			category.IsExpense = *input.IsExpense
		}
		category.UpdatedAt = s.now().UTC()

		if err := tx.Update(ctx, category); err != nil {
			return err
		}

		updated = *category
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.cache.Purge()

	return &updated, nil
}

// Delete refuses categories that are still referenced by any row.
func (s *Service) Delete(ctx context.Context, caller access.Caller, id uint) error {
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		category, err := tx.GetByID(ctx, access.VisibleScope(caller, access.ResourceCategory), id)
		if err != nil {
			return err
		}
		if err := access.Authorize(caller, category); err != nil {
			return err
		}

		refs, err := tx.CountReferences(ctx, category.ID)
		if err != nil {
			return err
		}
		if refs > 0 {
			return ErrCategoryInUse
		}

		deleted, err := tx.Delete(ctx, category.ID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrCategoryNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.cache.Purge()
	return nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", errs.ErrValidation)
	}
	if len([]rune(name)) > maxNameLength {
		return "", fmt.Errorf("%w: name must be at most %d characters", errs.ErrValidation, maxNameLength)
	}
	return name, nil
}
