package queries

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// GetCourierSummaryQueryHandler loads the courier's delivery history through
// the repositories and derives rating and earnings with the settlement service.
// Settlement figures are computed on every read and never stored.
type GetCourierSummaryQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	settlement services.Settlement
}

func NewGetCourierSummaryQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	settlement services.Settlement,
) GetCourierSummaryQueryHandler {
	return GetCourierSummaryQueryHandler{
		uowFactory: uowFactory,
		settlement: settlement,
	}
}

// Handle reads the courier, its delivered orders and its completed batches in
// one transaction, so the three reads see the same state.
func (h GetCourierSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetCourierSummaryQuery,
) (GetCourierSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierSummaryQueryResponse{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return GetCourierSummaryQueryResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CourierRepository().Get(ctx, query.CourierID())
	if err != nil {
		return GetCourierSummaryQueryResponse{}, err
	}

	delivered, err := uow.OrderRepository().ListDeliveredByCourier(ctx, c.ID())
	if err != nil {
		return GetCourierSummaryQueryResponse{}, fmt.Errorf("list delivered orders: %w", err)
	}

	batches, err := uow.AssignmentRepository().ListCompleted(ctx, c.ID())
	if err != nil {
		return GetCourierSummaryQueryResponse{}, fmt.Errorf("list completed batches: %w", err)
	}

	summary := GetCourierSummaryQueryResponse{
		ID:                c.ID(),
		VehicleType:       c.VehicleType(),
		Regions:           c.Regions(),
		WorkingHours:      c.WorkingHours().Strings(),
		RemainingCapacity: c.RemainingCapacity().Float64(),
	}

	if rating, ok := h.settlement.Rating(delivered); ok {
		summary.Rating = &rating
	}
	if earnings, ok := h.settlement.Earnings(batches, delivered); ok {
		summary.Earnings = &earnings
	}

	return summary, nil
}
