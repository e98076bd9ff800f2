package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// CreateOrdersCommandHandler adds new Available orders to the pool.
type CreateOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrdersCommandHandler creates a handler for order registration.
func NewCreateOrdersCommandHandler(uowFactory OrderUoWFactory) CreateOrdersCommandHandler {
	return CreateOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle persists every order of the command within one transaction and
// returns their ids. The request order becomes the pool order.
func (h CreateOrdersCommandHandler) Handle(ctx context.Context, cmd CreateOrdersCommand) ([]int64, error) {
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

	orderRepo := uow.OrderRepository()
	ids := make([]int64, 0, len(cmd.Orders()))
	for _, s := range cmd.Orders() {
		o, err := order.NewOrder(s.ID, s.Weight, s.Region, s.DeliveryHours)
		if err != nil {
			return nil, err
		}

		if err = orderRepo.Add(ctx, o); err != nil {
			return nil, err
		}
		ids = append(ids, o.ID())
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return ids, nil
}
