package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Available ──> Held ──> Delivered
//	    ^          │
//	    └──────────┘
//	 (eviction or release)
//
// Delivered is final. The numeric values are persisted, so they must not be reordered.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Available orders sit in the pool waiting for a courier.
	Available

	// Held orders belong to an open batch of exactly one courier.
	Held

	// Delivered orders carry a completion time and never change again.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Available: "Available",
		Held:      "Held",
		Delivered: "Delivered",
	}
}

// Validate checks if the Status value is one of Available, Held, Delivered.
// It is used on values restored from storage.
func (s Status) Validate() error {
	if s < Available || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateCanHaveCourier validates the consistency between order status and courier assignment.
//
// Business Rules:
//   - Available orders must not have a courier
//   - Held and Delivered orders must have a courier
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier && s == Available {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a courier", s),
		)
	}

	if !courier && (s == Held || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no courier", s),
		)
	}

	return nil
}

// Hold transitions Available to Held.
func (s Status) Hold() (Status, error) {
	if s != Available {
		return 0, errs.NewInvalidTransitionError("status", fmt.Errorf("cannot hold a %s order", s))
	}
	return Held, nil
}

// Release transitions Held back to Available.
func (s Status) Release() (Status, error) {
	if s != Held {
		return 0, errs.NewInvalidTransitionError("status", fmt.Errorf("cannot release a %s order", s))
	}
	return Available, nil
}

// Deliver transitions Held to Delivered.
func (s Status) Deliver() (Status, error) {
	if s != Held {
		return 0, errs.NewInvalidTransitionError("status", fmt.Errorf("cannot deliver a %s order", s))
	}
	return Delivered, nil
}
