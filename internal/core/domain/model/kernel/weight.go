package kernel

import (
	"fmt"
	"math"
	"strconv"

	"dispatch/internal/pkg/errs"
)

// weightScale is the number of Weight units per whole unit of mass (four decimal places).
const weightScale = 10_000

// precisionTolerance absorbs binary floating point error when checking that a
// weight has at most four decimal places.
const precisionTolerance = 1e-6

const (
	// MinOrderWeight is the lightest order accepted by the system (0.01).
	MinOrderWeight Weight = 100
	// MaxOrderWeight is the heaviest order accepted by the system (50).
	MaxOrderWeight Weight = 50 * weightScale
)

// Weight is a mass with four-decimal precision stored as an integer number of
// ten-thousandths, so capacity arithmetic is exact.
type Weight int64

// WeightFromFloat rounds v to four decimal places. It performs no range checks
// and is used for capacities and persisted values.
func WeightFromFloat(v float64) Weight {
	return Weight(math.Round(v * weightScale))
}

// NewOrderWeight converts v into an order weight. It rejects values outside
// [MinOrderWeight, MaxOrderWeight] and values with more than four decimal places.
func NewOrderWeight(v float64) (Weight, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errs.NewValueIsInvalidError("weight")
	}

	if v < MinOrderWeight.Float64() || v > MaxOrderWeight.Float64() {
		return 0, errs.NewValueIsOutOfRangeError("weight", v, MinOrderWeight.Float64(), MaxOrderWeight.Float64())
	}

	scaled := v * weightScale
	if math.Abs(scaled-math.Round(scaled)) > precisionTolerance {
		return 0, errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%v has more than four decimal places", v))
	}
	return WeightFromFloat(v), nil
}

// Float64 returns the weight in whole units.
func (w Weight) Float64() float64 {
	return float64(w) / weightScale
}

func (w Weight) String() string {
	return strconv.FormatFloat(w.Float64(), 'f', -1, 64)
}
