package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// Returns a ConflictError if an order with the same id already exists.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, including cleared
	// courier, batch and assign time after an eviction.
	Update(ctx context.Context, aggregate *order.Order) error

	// Claim persists a freshly claimed order only if the stored row is still
	// Available. Returns a ConflictError when another courier got there first.
	Claim(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its identifier.
	// Returns an ObjectNotFoundError for an unknown id.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// ListAvailable returns Available orders in the given regions that weigh at
	// most maxWeight, in pool (creation) order. Rows are locked, and rows locked
	// by concurrent transactions are skipped.
	ListAvailable(ctx context.Context, regions []int64, maxWeight kernel.Weight) ([]*order.Order, error)

	// ListByAssignment returns the orders that belong to a batch, including delivered ones.
	ListByAssignment(ctx context.Context, assignmentID kernel.UUID) ([]*order.Order, error)

	// ListDeliveredByCourier returns every order the courier delivered.
	ListDeliveredByCourier(ctx context.Context, courierID int64) ([]*order.Order, error)
}
