// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The holding columns (courier, batch, vehicle class, assign time) are either
// all set or all NULL. CreatedAt defines the pool order.
type OrderDTO struct {
	ID            int64          `gorm:"primaryKey;autoIncrement:false"`
	Weight        float64        `gorm:"type:numeric(6,4);not null"`
	Region        int64          `gorm:"not null;index"`
	DeliveryHours pq.StringArray `gorm:"type:text[];not null"`
	Status        int            `gorm:"type:smallint;not null;index"`
	CourierID     *int64         `gorm:"index"`
	AssignmentID  *uuid.UUID     `gorm:"type:uuid;index"`
	VehicleType   *string        `gorm:"type:varchar(8)"`
	AssignedAt    *time.Time
	CompletedAt   *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime;index"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:            o.ID(),
		Weight:        o.Weight().Float64(),
		Region:        o.Region(),
		DeliveryHours: pq.StringArray(o.DeliveryHours().Strings()),
		Status:        int(o.Status()),
		CompletedAt:   o.CompletedAt(),
	}

	if h := o.Holding(); h != nil {
		courierID := h.CourierID
		assignmentID := h.AssignmentID.Bytes()
		vehicle := h.VehicleType.String()
		assignedAt := h.AssignedAt
		dto.CourierID = &courierID
		dto.AssignmentID = &assignmentID
		dto.VehicleType = &vehicle
		dto.AssignedAt = &assignedAt
	}

	return dto
}

// columns lists every mutable column explicitly so NULLs and zero values are written too.
func (dto OrderDTO) columns() map[string]any {
	return map[string]any{
		"status":        dto.Status,
		"courier_id":    dto.CourierID,
		"assignment_id": dto.AssignmentID,
		"vehicle_type":  dto.VehicleType,
		"assigned_at":   dto.AssignedAt,
		"completed_at":  dto.CompletedAt,
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	hours, err := kernel.ParseDeliveryHours(dto.DeliveryHours)
	if err != nil {
		return nil, err
	}

	var holding *order.Holding
	if dto.CourierID != nil {
		h := order.Holding{CourierID: *dto.CourierID}
		if dto.AssignmentID != nil {
			if h.AssignmentID, err = kernel.UUIDFromBytes((*dto.AssignmentID)[:]); err != nil {
				return nil, err
			}
		}
		if dto.VehicleType != nil {
			h.VehicleType = kernel.VehicleType(*dto.VehicleType)
		}
		if dto.AssignedAt != nil {
			h.AssignedAt = *dto.AssignedAt
		}
		holding = &h
	}

	return order.RestoreOrder(
		dto.ID,
		kernel.WeightFromFloat(dto.Weight),
		dto.Region,
		hours,
		order.Status(dto.Status),
		holding,
		dto.CompletedAt,
	)
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
