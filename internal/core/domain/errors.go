package domain

import "errors"

// Caller errors surfaced by the core. The HTTP layer maps these onto
// status codes; everything else the core swallows into "no data" findings.
var (
	// ErrInvalidCoordinate marks a non-finite coordinate component.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrOutOfBounds marks a coordinate outside the configured city
	// envelope. A deliberate guard, not a transient condition.
	ErrOutOfBounds = errors.New("coordinate outside service region")

	// ErrAddressNotFound is returned when the address register yields no
	// candidate for a query.
	ErrAddressNotFound = errors.New("address not found")
)
