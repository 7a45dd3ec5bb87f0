package summary

import (
	"strconv"
	"strings"
	"time"
)

// ParsePeriod resolves year and month query values. Empty values default to now.
func ParsePeriod(yearRaw, monthRaw string, now time.Time) (Period, error) {
	period := Period{Year: now.Year(), Month: now.Month()}

	if raw := strings.TrimSpace(yearRaw); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 1 || year > 9999 {
			return Period{}, ErrInvalidYear
		}
		period.Year = year
	}

	if raw := strings.TrimSpace(monthRaw); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil || month < 1 || month > 12 {
			return Period{}, ErrInvalidMonth
		}
		period.Month = time.Month(month)
	}

	return period, nil
}
