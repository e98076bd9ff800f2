package order_test

import (
	"fmt"
	"testing"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	assert.Equal(t, 0, int(order.Unknown))
	assert.Equal(t, 1, int(order.Available))
	assert.Equal(t, 2, int(order.Held))
	assert.Equal(t, 3, int(order.Delivered))
}

func TestStatus_Validate(t *testing.T) {
	for _, status := range []order.Status{order.Available, order.Held, order.Delivered} {
		t.Run(fmt.Sprintf("should validate %s status", status), func(t *testing.T) {
			require.NoError(t, status.Validate())
		})
	}

	for _, status := range []order.Status{order.Unknown, order.Status(4), order.Status(-1)} {
		t.Run(fmt.Sprintf("should reject %d", int(status)), func(t *testing.T) {
			require.ErrorIs(t, status.Validate(), errs.ErrValueIsInvalid)
		})
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Available", order.Available.String())
	assert.Equal(t, "Held", order.Held.String())
	assert.Equal(t, "Delivered", order.Delivered.String())
	assert.Equal(t, "Unknown", order.Status(99).String())
}

func TestStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    order.Status
		apply   func(order.Status) (order.Status, error)
		want    order.Status
		wantErr bool
	}{
		{"hold available", order.Available, order.Status.Hold, order.Held, false},
		{"hold held", order.Held, order.Status.Hold, 0, true},
		{"hold delivered", order.Delivered, order.Status.Hold, 0, true},
		{"release held", order.Held, order.Status.Release, order.Available, false},
		{"release available", order.Available, order.Status.Release, 0, true},
		{"release delivered", order.Delivered, order.Status.Release, 0, true},
		{"deliver held", order.Held, order.Status.Deliver, order.Delivered, false},
		{"deliver available", order.Available, order.Status.Deliver, 0, true},
		{"deliver delivered", order.Delivered, order.Status.Deliver, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.apply(tt.from)

			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrInvalidTransition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus_ValidateCanHaveCourier(t *testing.T) {
	require.NoError(t, order.Available.ValidateCanHaveCourier(false))
	require.NoError(t, order.Held.ValidateCanHaveCourier(true))
	require.NoError(t, order.Delivered.ValidateCanHaveCourier(true))

	require.Error(t, order.Available.ValidateCanHaveCourier(true))
	require.Error(t, order.Held.ValidateCanHaveCourier(false))
	require.Error(t, order.Delivered.ValidateCanHaveCourier(false))
}
