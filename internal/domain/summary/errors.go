package summary

import (
	"fmt"

	"finance-tracker/internal/domain/errs"
)

var (
	ErrInvalidYear  = fmt.Errorf("%w: year must be an integer between 1 and 9999", errs.ErrBadRequest)
	ErrInvalidMonth = fmt.Errorf("%w: month must be an integer between 1 and 12", errs.ErrBadRequest)
)
