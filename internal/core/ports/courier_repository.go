// Package ports defines repository interfaces for the dispatch domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	// Returns a ConflictError if a courier with the same id already exists.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists changes to an existing courier aggregate, including its
	// remaining capacity.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier aggregate by its identifier.
	// Returns an ObjectNotFoundError for an unknown id.
	Get(ctx context.Context, id int64) (*courier.Courier, error)

	// GetForUpdate retrieves a courier and locks its row until the surrounding
	// transaction ends. Every command that changes a courier's capacity or open
	// batch calls it first, so work for one courier is serialized while other
	// couriers proceed concurrently.
	//
	// Example:
	//   c, err := uow.CourierRepository().GetForUpdate(ctx, courierID)
	//   if err != nil {
	//       return fmt.Errorf("lock courier: %w", err)
	//   }
	GetForUpdate(ctx context.Context, id int64) (*courier.Courier, error)
}
