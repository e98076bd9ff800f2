package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2021, 1, 10, 10, 0, 0, 0, time.UTC)

func newCourier(t *testing.T, id int64, vehicle kernel.VehicleType, regions []int64, hours ...string) *courier.Courier {
	t.Helper()
	wh, err := kernel.ParseWorkingHours(hours)
	require.NoError(t, err)
	c, err := courier.NewCourier(id, vehicle, regions, wh)
	require.NoError(t, err)
	return c
}

func newOrder(t *testing.T, id int64, weight float64, region int64, hours ...string) *order.Order {
	t.Helper()
	w, err := kernel.NewOrderWeight(weight)
	require.NoError(t, err)
	dh, err := kernel.ParseDeliveryHours(hours)
	require.NoError(t, err)
	o, err := order.NewOrder(id, w, region, dh)
	require.NoError(t, err)
	return o
}

func ids(orders []*order.Order) []int64 {
	out := make([]int64, len(orders))
	for i, o := range orders {
		out[i] = o.ID()
	}
	return out
}
