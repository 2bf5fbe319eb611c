package settings

import "errors"

var (
	// ErrMissingAgencyName is returned when settings omit the agency name.
	ErrMissingAgencyName = errors.New("agency name is required")

	// ErrInvalidBillingDay is returned when the billing day falls outside 1-28.
	ErrInvalidBillingDay = errors.New("billing day must be between 1 and 28")
)
