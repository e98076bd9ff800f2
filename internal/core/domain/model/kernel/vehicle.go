package kernel

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// VehicleType is the courier vehicle class.
type VehicleType string

const (
	Foot VehicleType = "foot"
	Bike VehicleType = "bike"
	Car  VehicleType = "car"
)

var maxWeights = map[VehicleType]Weight{
	Foot: 10 * weightScale,
	Bike: 15 * weightScale,
	Car:  50 * weightScale,
}

var payCoefficients = map[VehicleType]int{
	Foot: 2,
	Bike: 5,
	Car:  9,
}

// NewVehicleType parses a vehicle class name.
func NewVehicleType(s string) (VehicleType, error) {
	v := VehicleType(s)
	if !v.IsValid() {
		return "", errs.NewValueIsInvalidErrorWithCause("courier_type", fmt.Errorf("%q is not one of foot, bike, car", s))
	}
	return v, nil
}

// IsValid reports whether v is one of the known classes.
func (v VehicleType) IsValid() bool {
	_, ok := maxWeights[v]
	return ok
}

// MaxWeight is the carry capacity of the class; zero for an unknown class.
func (v VehicleType) MaxWeight() Weight {
	return maxWeights[v]
}

// PayCoefficient is the per-batch pay multiplier of the class; zero for an unknown class.
func (v VehicleType) PayCoefficient() int {
	return payCoefficients[v]
}

func (v VehicleType) String() string {
	return string(v)
}
