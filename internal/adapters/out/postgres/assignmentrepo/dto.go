// Package assignmentrepo persists courier batches. Batch membership is not
// stored here: it is read back from the orders that reference the batch.
package assignmentrepo

import (
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO represents the database structure for persisting batches.
// The partial unique index allows a single open batch per courier.
type AssignmentDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierID   int64     `gorm:"not null;index:idx_assignments_courier;uniqueIndex:idx_assignments_open_courier,where:complete = false"`
	VehicleType string    `gorm:"type:varchar(8);not null"`
	AssignedAt  time.Time `gorm:"not null"`
	Complete    bool      `gorm:"not null;default:false"`
}

// TableName specifies the database table name for batches.
func (AssignmentDTO) TableName() string {
	return "assignments"
}

// memberRow is one (order, batch) pair read from the orders table.
type memberRow struct {
	ID           int64
	AssignmentID uuid.UUID
}

func fromDomain(a *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:          a.ID().Bytes(),
		CourierID:   a.CourierID(),
		VehicleType: a.VehicleType().String(),
		AssignedAt:  a.AssignedAt(),
		Complete:    a.IsComplete(),
	}
}

func toDomain(dto AssignmentDTO, orderIDs []int64) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(
		id,
		dto.CourierID,
		kernel.VehicleType(dto.VehicleType),
		orderIDs,
		dto.AssignedAt,
		dto.Complete,
	)
}
