package patients

import "errors"

var (
	// ErrInvalidName is returned when the name is missing.
	ErrInvalidName = errors.New("name is required")

	// ErrMissingContact is returned when both email and phone are missing.
	ErrMissingContact = errors.New("either email or phone is required")

	// ErrInvalidCareLevel is returned for an unknown care level.
	ErrInvalidCareLevel = errors.New("care level must be companion, personal or skilled")

	// ErrPatientNotFound is returned when a patient is not found.
	ErrPatientNotFound = errors.New("patient not found")
)
