package queries

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetCourierSummaryQueryIsNotConstructed = errors.New(
		"GetCourierSummaryQuery must be created via NewGetCourierSummaryQuery constructor",
	)
)

// GetCourierSummaryQuery retrieves a courier's profile with its rating and earnings.
type GetCourierSummaryQuery struct {
	courierID int64

	guard guard.ConstructorGuard
}

func NewGetCourierSummaryQuery(courierID int64) (GetCourierSummaryQuery, error) {
	if courierID <= 0 {
		return GetCourierSummaryQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"courier_id", fmt.Errorf("%d is not positive", courierID))
	}
	return GetCourierSummaryQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetCourierSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierSummaryQueryIsNotConstructed)
}

func (q GetCourierSummaryQuery) CourierID() int64 {
	return q.courierID
}

// GetCourierSummaryQueryResponse is the courier profile plus settlement figures.
// Rating and Earnings are nil until the courier has delivered an order or
// completed a batch respectively.
//
// Example:
//
//	summary, err := handler.Handle(ctx, query)
//	if err == nil && summary.Rating != nil {
//	    fmt.Printf("courier %d rated %.2f\n", summary.ID, *summary.Rating)
//	}
type GetCourierSummaryQueryResponse struct {
	ID                int64
	VehicleType       kernel.VehicleType
	Regions           []int64
	WorkingHours      []string
	RemainingCapacity float64
	Rating            *float64
	Earnings          *int64
}
