package domain

import "errors"

// Lifecycle status keys. The registry table is seeded from these; product
// status writes go through the transition helpers below rather than free-form
// updates.
const (
	StatusInbound    = "inbound"
	StatusInspection = "inspection"
	StatusStorage    = "storage"
	StatusListing    = "listing"
	StatusSold       = "sold"
	StatusOrdered    = "ordered"
	StatusShipping   = "shipping"
	StatusReturned   = "returned"
	StatusOnHold     = "on_hold"
)

// Shipment statuses mirror the product lifecycle but are tracked per parcel.
const (
	ShipmentPreparing = "preparing"
	ShipmentSold      = "sold"
	ShipmentShipping  = "shipping"
	ShipmentDelivered = "delivered"
)

var (
	// ErrAlreadySold marks the idempotent re-sell case: the product already
	// carries the successor status, so the operation is a no-op, not a failure.
	ErrAlreadySold = errors.New("product already sold")
	// ErrBadTransition rejects a sale event from any status other than listing.
	ErrBadTransition = errors.New("status transition not allowed")
)

// SaleSuccessor returns the status a product moves to on a sale event.
// Only listing -> sold is a real transition; a repeat call on a sold product
// is reported via ErrAlreadySold so callers can treat it as success.
func SaleSuccessor(current string) (string, error) {
	switch current {
	case StatusListing:
		return StatusSold, nil
	case StatusSold:
		return StatusSold, ErrAlreadySold
	default:
		return "", ErrBadTransition
	}
}

// Storable reports whether a product in the given status may be placed on a
// shelf. Returned goods go back to storage after re-inspection.
func Storable(current string) bool {
	switch current {
	case StatusInbound, StatusInspection, StatusReturned:
		return true
	}
	return false
}

// Pickable reports whether a picking task may be opened for the product.
func Pickable(current string) bool { return current == StatusSold }
