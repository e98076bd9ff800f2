package courier

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
)

// ErrCapacityExceeded is returned when an order does not fit into the remaining capacity.
var ErrCapacityExceeded = errors.New("order weight exceeds remaining capacity")

// MaxCapacity resolves the carry capacity of a vehicle class. An unknown class
// yields zero, which makes every order fail CanCarry.
func MaxCapacity(vehicleType kernel.VehicleType) kernel.Weight {
	return vehicleType.MaxWeight()
}

// CanCarry reports whether an order of the given weight fits into the remaining capacity.
func CanCarry(remaining, weight kernel.Weight) bool {
	return remaining >= weight
}

// Debit subtracts weight from the remaining capacity. The result never goes
// negative: a weight that does not fit is rejected with ErrCapacityExceeded.
func Debit(remaining, weight kernel.Weight) (kernel.Weight, error) {
	if !CanCarry(remaining, weight) {
		return remaining, fmt.Errorf("%w: %s left, %s requested", ErrCapacityExceeded, remaining, weight)
	}
	return remaining - weight, nil
}
