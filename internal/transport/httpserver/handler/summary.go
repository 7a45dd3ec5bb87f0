package handler

import (
	"net/http"

	"finance-tracker/internal/domain/money"
	summarydomain "finance-tracker/internal/domain/summary"
)

type summaryPeriodResponse struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	MonthName string `json:"month_name"`
}

type summaryCategoryResponse struct {
	CategoryName string  `json:"category__name"`
	Total        string  `json:"total"`
	Count        int64   `json:"count"`
	Percentage   float64 `json:"percentage"`
}

type summaryDailyResponse struct {
	Date  string `json:"date"`
	Total string `json:"total"`
}

type monthlySummaryResponse struct {
	Period      summaryPeriodResponse     `json:"period"`
	Total       string                    `json:"total"`
	ByCategory  []summaryCategoryResponse `json:"by_category"`
	DailyTotals []summaryDailyResponse    `json:"daily_totals"`
}

func toMonthlySummaryResponse(report summarydomain.Report) monthlySummaryResponse {
	byCategory := make([]summaryCategoryResponse, 0, len(report.ByCategory))
	for _, row := range report.ByCategory {
		percentage, _ := row.Percentage.Float64()
		byCategory = append(byCategory, summaryCategoryResponse{
			CategoryName: row.CategoryName,
			Total:        money.Format(row.Total),
			Count:        row.Count,
			Percentage:   percentage,
		})
	}

	daily := make([]summaryDailyResponse, 0, len(report.DailyTotals))
	for _, row := range report.DailyTotals {
		daily = append(daily, summaryDailyResponse{
			Date:  formatDate(row.Date),
			Total: money.Format(row.Total),
		})
	}

	return monthlySummaryResponse{
		Period: summaryPeriodResponse{
			Year:      report.Period.Year,
			Month:     int(report.Period.Month),
			MonthName: report.Period.MonthName(),
		},
		Total:       money.Format(report.Total),
		ByCategory:  byCategory,
		DailyTotals: daily,
	}
}

func (h *Handlers) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	values := r.URL.Query()
	period, err := summarydomain.ParsePeriod(values.Get("year"), values.Get("month"), h.now())
	if err != nil {
		h.writeDomainError(w, r, "summary.monthly", err, "user_id", caller.ID)
		return
	}

	report, err := h.Summary.Monthly(r.Context(), caller, period)
	if err != nil {
		h.writeDomainError(w, r, "summary.monthly", err, "user_id", caller.ID, "year", period.Year, "month", int(period.Month))
		return
	}
	writeJSON(w, http.StatusOK, toMonthlySummaryResponse(report))
}
