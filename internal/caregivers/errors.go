package caregivers

import "errors"

var (
	// ErrInvalidName is returned when the name is missing.
	ErrInvalidName = errors.New("name is required")

	// ErrMissingEmail is returned when the email is missing.
	ErrMissingEmail = errors.New("email is required")

	// ErrCaregiverNotFound is returned when a caregiver is not found.
	ErrCaregiverNotFound = errors.New("caregiver not found")
)
