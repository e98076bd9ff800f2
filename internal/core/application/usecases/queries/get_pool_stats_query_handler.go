package queries

import (
	"context"

	"dispatch/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type GetPoolStatsQueryHandler struct {
	db *gorm.DB
}

func NewGetPoolStatsQueryHandler(db *gorm.DB) GetPoolStatsQueryHandler {
	return GetPoolStatsQueryHandler{db: db}
}

// Handle counts orders by status and open batches in a single round trip.
func (h GetPoolStatsQueryHandler) Handle(ctx context.Context, query GetPoolStatsQuery) (GetPoolStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPoolStatsQueryResponse{}, err
	}

	var stats GetPoolStatsQueryResponse
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT count(*) FROM orders WHERE status = ?),
			(SELECT count(*) FROM orders WHERE status = ?),
			(SELECT count(*) FROM orders WHERE status = ?),
			(SELECT count(*) FROM assignments WHERE NOT complete)
	`, int(order.Available), int(order.Held), int(order.Delivered)).Row()

	if err := row.Scan(&stats.Available, &stats.Held, &stats.Delivered, &stats.OpenBatches); err != nil {
		return GetPoolStatsQueryResponse{}, err
	}

	return stats, nil
}
