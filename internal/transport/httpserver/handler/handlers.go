package handler

import (
	"time"

	budgetsdomain "finance-tracker/internal/domain/budgets"
	categoriesdomain "finance-tracker/internal/domain/categories"
	summarydomain "finance-tracker/internal/domain/summary"
	txdomain "finance-tracker/internal/domain/transactions"
	"finance-tracker/pkg/logger"
)

type Handlers struct {
	Categories *categoriesdomain.Service
	Expenses   *txdomain.Service
	Incomes    *txdomain.Service
	Budgets    *budgetsdomain.Service
	Summary    *summarydomain.Service
	log        logger.Logger
	now        func() time.Time
}

func New(
	categories *categoriesdomain.Service,
	expenses *txdomain.Service,
	incomes *txdomain.Service,
	budgets *budgetsdomain.Service,
	summary *summarydomain.Service,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Categories: categories,
		Expenses:   expenses,
		Incomes:    incomes,
		Budgets:    budgets,
		Summary:    summary,
		log:        log,
		now:        time.Now,
	}
}
