package requests

import "errors"

var (
	// ErrMissingPatient is returned when the patient id is missing.
	ErrMissingPatient = errors.New("patient_id is required")

	// ErrMissingService is returned when the service slug is missing.
	ErrMissingService = errors.New("service_slug is required")

	// ErrUnknownService is returned when the slug matches no catalog service.
	ErrUnknownService = errors.New("no such service in the catalog")

	// ErrRequestNotFound is returned when a request is not found.
	ErrRequestNotFound = errors.New("service request not found")

	// ErrIllegalTransition is returned on a disallowed status change.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrCaregiverUnavailable is returned when assigning a caregiver who
	// is inactive or not accepting assignments.
	ErrCaregiverUnavailable = errors.New("caregiver is not available for assignment")
)
