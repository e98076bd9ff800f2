package commands

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
)

// CreateCouriersCommandHandler handles the business logic for courier registration.
// Creates and persists new courier entities with full capacity.
type CreateCouriersCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewCreateCouriersCommandHandler creates a handler for courier registration.
// Requires a CourierUoWFactory for transactional persistence operations.
func NewCreateCouriersCommandHandler(uowFactory CourierUoWFactory) CreateCouriersCommandHandler {
	return CreateCouriersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle persists every courier of the command within one transaction and
// returns their ids. A duplicate id fails the whole request with a ConflictError.
func (h CreateCouriersCommandHandler) Handle(ctx context.Context, cmd CreateCouriersCommand) ([]int64, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	ids := make([]int64, 0, len(cmd.Couriers()))
	for _, p := range cmd.Couriers() {
		c, err := courier.NewCourier(p.ID, p.VehicleType, p.Regions, p.WorkingHours)
		if err != nil {
			return nil, err
		}

		if err = courierRepo.Add(ctx, c); err != nil {
			return nil, err
		}
		ids = append(ids, c.ID())
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return ids, nil
}
