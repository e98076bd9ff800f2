package ports

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for courier batches.
// The store allows at most one open batch per courier; adding a second one
// fails with a ConflictError.
type AssignmentRepository interface {
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	// Update persists the assign time and completion flag. Membership is
	// derived from the orders themselves.
	Update(ctx context.Context, aggregate *assignment.Assignment) error

	// Get returns an ObjectNotFoundError for an unknown id.
	Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	// FindOpen returns the courier's open batch, or nil when there is none.
	FindOpen(ctx context.Context, courierID int64) (*assignment.Assignment, error)

	// ListCompleted returns the courier's completed batches.
	ListCompleted(ctx context.Context, courierID int64) ([]*assignment.Assignment, error)
}
