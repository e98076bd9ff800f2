package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchDispatcher_Dispatch(t *testing.T) {
	dispatcher := services.NewBatchDispatcher()

	t.Run("should take a matching order", func(t *testing.T) {
		// Given
		c := newCourier(t, 1, kernel.Foot, []int64{2}, "11:30-14:00")
		o := newOrder(t, 1, 1, 2, "11:30-14:00")

		// When
		batch, claimed, err := dispatcher.Dispatch(c, nil, []*order.Order{o}, now)

		// Then
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, batch.OrderIDs())
		assert.Equal(t, []int64{1}, ids(claimed))
		assert.Equal(t, now, batch.AssignedAt())
		assert.Equal(t, kernel.Foot, batch.VehicleType())
		assert.True(t, o.IsHeldBy(1))
		assert.Equal(t, batch.ID(), *o.AssignmentID())
		assert.Equal(t, kernel.WeightFromFloat(9), c.RemainingCapacity())
	})

	t.Run("should skip orders heavier than capacity", func(t *testing.T) {
		c := newCourier(t, 1, kernel.Foot, []int64{2}, "09:00-18:00")
		light := newOrder(t, 1, 1, 2, "09:00-18:00")
		heavy := newOrder(t, 2, 11, 2, "09:00-18:00")

		batch, _, err := dispatcher.Dispatch(c, nil, []*order.Order{light, heavy}, now)

		require.NoError(t, err)
		assert.Equal(t, []int64{1}, batch.OrderIDs())
		assert.True(t, heavy.IsAvailable())
	})

	t.Run("should filter by region and working hours", func(t *testing.T) {
		c := newCourier(t, 1, kernel.Car, []int64{1, 2}, "09:00-12:00")
		otherRegion := newOrder(t, 1, 1, 3, "09:00-12:00")
		late := newOrder(t, 2, 1, 1, "12:01-15:00")
		touching := newOrder(t, 3, 1, 2, "12:00-15:00")
		overnight := newOrder(t, 4, 1, 1, "23:00-09:00")

		batch, _, err := dispatcher.Dispatch(c, nil, []*order.Order{otherRegion, late, touching, overnight}, now)

		require.NoError(t, err)
		assert.Equal(t, []int64{3, 4}, batch.OrderIDs())
		assert.True(t, otherRegion.IsAvailable())
		assert.True(t, late.IsAvailable())
	})

	t.Run("should accept greedily in pool order", func(t *testing.T) {
		c := newCourier(t, 1, kernel.Foot, []int64{1}, "09:00-18:00")
		pool := []*order.Order{
			newOrder(t, 5, 6, 1, "09:00-18:00"),
			newOrder(t, 3, 5, 1, "09:00-18:00"),
			newOrder(t, 4, 4, 1, "09:00-18:00"),
		}

		batch, _, err := dispatcher.Dispatch(c, nil, pool, now)

		require.NoError(t, err)
		assert.Equal(t, []int64{5, 4}, batch.OrderIDs())
		assert.Equal(t, kernel.Weight(0), c.RemainingCapacity())
	})

	t.Run("should not create a batch when nothing matches", func(t *testing.T) {
		c := newCourier(t, 1, kernel.Foot, []int64{1}, "09:00-18:00")
		o := newOrder(t, 1, 1, 9, "09:00-18:00")

		batch, claimed, err := dispatcher.Dispatch(c, nil, []*order.Order{o}, now)

		require.ErrorIs(t, err, services.ErrNoSuitableOrders)
		assert.Nil(t, batch)
		assert.Empty(t, claimed)
		assert.True(t, o.IsAvailable())
	})

	t.Run("should skip orders that are already held", func(t *testing.T) {
		first := newCourier(t, 1, kernel.Foot, []int64{1}, "09:00-18:00")
		second := newCourier(t, 2, kernel.Foot, []int64{1}, "09:00-18:00")
		pool := []*order.Order{newOrder(t, 1, 1, 1, "09:00-18:00")}

		_, _, err := dispatcher.Dispatch(first, nil, pool, now)
		require.NoError(t, err)

		_, _, err = dispatcher.Dispatch(second, nil, pool, now)
		require.ErrorIs(t, err, services.ErrNoSuitableOrders)
		assert.True(t, pool[0].IsHeldBy(1))
	})

	t.Run("should return the open batch unchanged", func(t *testing.T) {
		// Given
		c := newCourier(t, 1, kernel.Foot, []int64{1}, "09:00-18:00")
		pool := []*order.Order{
			newOrder(t, 1, 1, 1, "09:00-18:00"),
			newOrder(t, 2, 1, 1, "09:00-18:00"),
		}
		batch, _, err := dispatcher.Dispatch(c, nil, pool[:1], now)
		require.NoError(t, err)
		remaining := c.RemainingCapacity()

		// When
		again, claimed, err := dispatcher.Dispatch(c, batch, pool, now.Add(time.Minute))

		// Then
		require.NoError(t, err)
		assert.Same(t, batch, again)
		assert.Empty(t, claimed)
		assert.Equal(t, []int64{1}, again.OrderIDs())
		assert.Equal(t, now, again.AssignedAt())
		assert.True(t, pool[1].IsAvailable())
		assert.Equal(t, remaining, c.RemainingCapacity())
	})

	t.Run("should start a new batch after the previous one completed", func(t *testing.T) {
		c := newCourier(t, 1, kernel.Foot, []int64{1}, "09:00-18:00")
		done, err := assignment.NewAssignment(1, kernel.Foot, now)
		require.NoError(t, err)
		require.NoError(t, done.Complete())

		batch, _, err := dispatcher.Dispatch(c, done, []*order.Order{newOrder(t, 1, 1, 1, "09:00-18:00")}, now)

		require.NoError(t, err)
		assert.False(t, batch.ID().IsEqual(done.ID()))
	})

	t.Run("should reset capacity before selecting", func(t *testing.T) {
		c := newCourier(t, 1, kernel.Bike, []int64{1}, "09:00-18:00")
		require.NoError(t, c.Take(kernel.WeightFromFloat(14)))

		batch, _, err := dispatcher.Dispatch(c, nil, []*order.Order{newOrder(t, 1, 15, 1, "09:00-18:00")}, now)

		require.NoError(t, err)
		assert.Equal(t, []int64{1}, batch.OrderIDs())
		assert.Equal(t, kernel.Weight(0), c.RemainingCapacity())
	})
}
