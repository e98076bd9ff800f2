// Package courierrepo provides data transfer objects and mapping functions for courier persistence.
// This package implements the repository pattern for the courier domain aggregate, handling
// the conversion between domain entities and database representations.
package courierrepo

import (
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/lib/pq"
)

// CourierDTO represents the database structure for persisting courier aggregates.
// Regions and working hours are stored as Postgres arrays.
type CourierDTO struct {
	ID                int64          `gorm:"primaryKey;autoIncrement:false"`
	VehicleType       string         `gorm:"type:varchar(8);not null"`
	Regions           pq.Int64Array  `gorm:"type:bigint[];not null"`
	WorkingHours      pq.StringArray `gorm:"type:text[];not null"`
	RemainingCapacity float64        `gorm:"type:numeric(6,4);not null"`
}

// TableName specifies the database table name for courier entities.
// Overrides GORM's default naming convention to use "couriers" instead of "courier_dtos".
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier domain aggregate to its database representation.
func fromDomain(c *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:                c.ID(),
		VehicleType:       c.VehicleType().String(),
		Regions:           pq.Int64Array(c.Regions()),
		WorkingHours:      pq.StringArray(c.WorkingHours().Strings()),
		RemainingCapacity: c.RemainingCapacity().Float64(),
	}
}

// columns lists every mutable column explicitly so zero values are written too.
func (dto CourierDTO) columns() map[string]any {
	return map[string]any{
		"vehicle_type":       dto.VehicleType,
		"regions":            dto.Regions,
		"working_hours":      dto.WorkingHours,
		"remaining_capacity": dto.RemainingCapacity,
	}
}

// toDomain converts a database DTO to a courier domain aggregate using RestoreCourier.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	vehicle, err := kernel.NewVehicleType(dto.VehicleType)
	if err != nil {
		return nil, err
	}

	hours, err := kernel.ParseWorkingHours(dto.WorkingHours)
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(
		dto.ID,
		vehicle,
		dto.Regions,
		hours,
		kernel.WeightFromFloat(dto.RemainingCapacity),
	)
}
