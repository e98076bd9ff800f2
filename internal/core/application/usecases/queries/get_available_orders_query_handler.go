package queries

import (
	"context"

	"dispatch/internal/core/domain/model/order"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetAvailableOrdersQueryHandler reads the pool straight from the orders table.
type GetAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableOrdersQueryHandler creates a handler for pool queries.
// Requires a GORM database connection for query execution.
func NewGetAvailableOrdersQueryHandler(db *gorm.DB) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db}
}

// Handle returns Available orders in pool order, which is the order couriers
// are offered them in.
func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) ([]GetAvailableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetAvailableOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			weight,
			region,
			delivery_hours
		FROM orders
		WHERE status = ?
		ORDER BY created_at, id
	`, int(order.Available)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp  GetAvailableOrdersQueryResponse
			hours pq.StringArray
		)

		if err = rows.Scan(&resp.ID, &resp.Weight, &resp.Region, &hours); err != nil {
			return nil, err
		}
		resp.DeliveryHours = []string(hours)
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
