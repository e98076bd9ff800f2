package assignment_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2021, 1, 10, 9, 32, 14, 0, time.UTC)

func createBatch(t *testing.T, orderIDs ...int64) *assignment.Assignment {
	t.Helper()
	a, err := assignment.NewAssignment(1, kernel.Bike, created)
	require.NoError(t, err)
	for _, id := range orderIDs {
		require.NoError(t, a.Add(id))
	}
	a.Seal()
	return a
}

func TestNewAssignment(t *testing.T) {
	t.Run("should create empty open batch", func(t *testing.T) {
		a, err := assignment.NewAssignment(7, kernel.Car, created)

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		require.NoError(t, a.ID().Validate())
		assert.Equal(t, int64(7), a.CourierID())
		assert.Equal(t, kernel.Car, a.VehicleType())
		assert.Equal(t, created, a.AssignedAt())
		assert.True(t, a.IsOpen())
		assert.True(t, a.IsEmpty())
	})

	t.Run("should aggregate validation errors", func(t *testing.T) {
		a, err := assignment.NewAssignment(0, "plane", time.Time{})

		assert.Nil(t, a)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRestoreAssignment(t *testing.T) {
	id := kernel.NewUUID()

	a, err := assignment.RestoreAssignment(id, 1, kernel.Foot, []int64{3, 4}, created, true)

	require.NoError(t, err)
	assert.True(t, a.ID().IsEqual(id))
	assert.Equal(t, []int64{3, 4}, a.OrderIDs())
	assert.True(t, a.IsComplete())

	_, err = assignment.RestoreAssignment(kernel.UUID{}, 1, kernel.Foot, nil, created, false)
	require.Error(t, err)
}

func TestAssignment_Add(t *testing.T) {
	t.Run("should keep insertion order", func(t *testing.T) {
		a := createBatch(t, 5, 2, 9)
		assert.Equal(t, []int64{5, 2, 9}, a.OrderIDs())
		assert.True(t, a.Contains(2))
	})

	t.Run("should refuse additions after seal", func(t *testing.T) {
		a := createBatch(t, 1)
		require.ErrorIs(t, a.Add(2), errs.ErrInvalidTransition)
	})

	t.Run("should refuse duplicates", func(t *testing.T) {
		a, err := assignment.NewAssignment(1, kernel.Bike, created)
		require.NoError(t, err)
		require.NoError(t, a.Add(1))
		require.ErrorIs(t, a.Add(1), errs.ErrConflict)
	})
}

func TestAssignment_Remove(t *testing.T) {
	t.Run("should shrink membership and refresh time", func(t *testing.T) {
		a := createBatch(t, 1, 2)
		later := created.Add(time.Hour)

		require.NoError(t, a.Remove(1, later))

		assert.Equal(t, []int64{2}, a.OrderIDs())
		assert.Equal(t, later, a.AssignedAt())
	})

	t.Run("should report unknown member", func(t *testing.T) {
		a := createBatch(t, 1)
		require.ErrorIs(t, a.Remove(3, created), errs.ErrObjectNotFound)
	})
}

func TestAssignment_CloseIfDelivered(t *testing.T) {
	delivered := map[int64]bool{1: true, 2: false}
	isDelivered := func(id int64) bool { return delivered[id] }

	t.Run("should stay open while a member is undelivered", func(t *testing.T) {
		a := createBatch(t, 1, 2)
		assert.False(t, a.CloseIfDelivered(isDelivered))
		assert.True(t, a.IsOpen())
	})

	t.Run("should close when all members are delivered", func(t *testing.T) {
		a := createBatch(t, 1, 2)
		require.NoError(t, a.Remove(2, created.Add(time.Minute)))

		assert.True(t, a.CloseIfDelivered(isDelivered))
		assert.True(t, a.IsComplete())
		require.ErrorIs(t, a.Remove(1, created), errs.ErrInvalidTransition)
	})

	t.Run("should keep an emptied batch open", func(t *testing.T) {
		a := createBatch(t, 2)
		require.NoError(t, a.Remove(2, created.Add(time.Minute)))

		assert.False(t, a.CloseIfDelivered(isDelivered))
		assert.True(t, a.IsOpen())
		assert.True(t, a.IsEmpty())
	})
}

func TestAssignment_Complete(t *testing.T) {
	a := createBatch(t, 1)
	require.NoError(t, a.Complete())
	require.ErrorIs(t, a.Complete(), errs.ErrInvalidTransition)

	var zero assignment.Assignment
	require.ErrorIs(t, zero.Validate(), assignment.ErrAssignmentIsNotConstructed)
}
