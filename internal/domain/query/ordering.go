package query

import "strings"

type OrderTerm struct {
	Field string
	Desc  bool
}

type Ordering []OrderTerm

// ParseOrdering reads a comma separated list such as "-date,amount". Fields not
// in allowed are dropped; if nothing survives, fallback is returned.
func ParseOrdering(raw string, allowed []string, fallback Ordering) Ordering {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}

	permitted := make(map[string]struct{}, len(allowed))
	for _, field := range allowed {
		permitted[field] = struct{}{}
	}

	seen := make(map[string]struct{})
	result := make(Ordering, 0)
	for _, part := range strings.Split(raw, ",") {
		term := strings.TrimSpace(part)
		desc := strings.HasPrefix(term, "-")
		field := strings.TrimPrefix(term, "-")
		if _, ok := permitted[field]; !ok {
			continue
		}
		if _, dup := seen[field]; dup {
			continue
		}
		seen[field] = struct{}{}
		result = append(result, OrderTerm{Field: field, Desc: desc})
	}

	if len(result) == 0 {
		return fallback
	}
	return result
}

// Clause renders the ordering as SQL using column as the field-to-column mapper.
func (o Ordering) Clause(column func(string) string) string {
	parts := make([]string, 0, len(o))
	for _, term := range o {
		direction := "asc"
		if term.Desc {
			direction = "desc"
		}
		parts = append(parts, column(term.Field)+" "+direction)
	}
	return strings.Join(parts, ", ")
}
