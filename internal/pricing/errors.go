package pricing

import "errors"

var (
	// ErrInvalidPayload is returned when a save payload is not an array of items.
	ErrInvalidPayload = errors.New("pricing data must be an array of services")

	// ErrServiceNotFound is returned when a slug or id matches no service.
	ErrServiceNotFound = errors.New("service not found")

	// ErrItemNotFound is returned when an id matches no node in the forest.
	ErrItemNotFound = errors.New("pricing item not found")
)
