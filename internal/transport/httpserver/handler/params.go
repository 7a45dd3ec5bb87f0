package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"finance-tracker/internal/domain/errs"
	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

func parseDateParam(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseUintParam(value string) (*uint, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return nil, err
	}
	id := uint(parsed)
	return &id, nil
}

// pathID reads {id}. Anything that is not a positive integer cannot name a row.
func pathID(r *http.Request, notFound error) (uint, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "id"))
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		return 0, notFound
	}
	return uint(parsed), nil
}

// parseBodyDate parses a request date field; empty or malformed input is a
// validation failure of that field.
func parseBodyDate(field, value string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be a date in YYYY-MM-DD format", errs.ErrValidation, field)
	}
	return parsed, nil
}

func formatDate(value time.Time) string {
	return value.Format(dateLayout)
}
