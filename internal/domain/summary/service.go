package summary

import (
	"context"
	"sort"

	"finance-tracker/internal/domain/access"
	"finance-tracker/internal/domain/money"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Monthly builds the expense report for one month, scoped to what caller may read.
func (s *Service) Monthly(ctx context.Context, caller access.Caller, period Period) (Report, error) {
	from, to := period.Range()
	filter := MonthFilter{
		Scope: access.VisibleScope(caller, access.ResourceExpense),
		From:  from,
		To:    to,
	}

	report := Report{Period: period}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := s.repo.Total(gctx, filter)
		report.Total = total
		return err
	})
	g.Go(func() error {
		rows, err := s.repo.ByCategory(gctx, filter)
		report.ByCategory = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.repo.Daily(gctx, filter, DailyLimit)
		report.DailyTotals = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	if report.ByCategory == nil {
		report.ByCategory = []CategoryTotal{}
	}
	sort.SliceStable(report.ByCategory, func(i, j int) bool {
		a, b := report.ByCategory[i], report.ByCategory[j]
		if cmp := a.Total.Cmp(b.Total); cmp != 0 {
			return cmp > 0
		}
		return a.CategoryName < b.CategoryName
	})
	for i := range report.ByCategory {
		report.ByCategory[i].Percentage = money.Percent(report.ByCategory[i].Total, report.Total)
	}

	if report.DailyTotals == nil {
		report.DailyTotals = []DailyTotal{}
	}
	sort.SliceStable(report.DailyTotals, func(i, j int) bool {
		return report.DailyTotals[i].Date.After(report.DailyTotals[j].Date)
	})
	if len(report.DailyTotals) > DailyLimit {
		report.DailyTotals = report.DailyTotals[:DailyLimit]
	}

	return report, nil
}
