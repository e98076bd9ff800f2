package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateCouriersCommand(t *testing.T) {
	t.Run("parses every courier", func(t *testing.T) {
		cmd, err := commands.NewCreateCouriersCommand([]commands.NewCourier{
			{ID: 1, VehicleType: "foot", Regions: []int64{1, 12, 22}, WorkingHours: []string{"11:35-14:05", "09:00-11:00"}},
			{ID: 2, VehicleType: "car", Regions: []int64{3}, WorkingHours: []string{"09:00-18:00"}},
		})

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		require.Len(t, cmd.Couriers(), 2)
		assert.Equal(t, kernel.Foot, cmd.Couriers()[0].VehicleType)
		assert.Equal(t, []string{"11:35-14:05", "09:00-11:00"}, cmd.Couriers()[0].WorkingHours.Strings())
		assert.Equal(t, kernel.Car, cmd.Couriers()[1].VehicleType)
	})

	t.Run("reports every invalid item by id", func(t *testing.T) {
		_, err := commands.NewCreateCouriersCommand([]commands.NewCourier{
			{ID: 1, VehicleType: "foot", Regions: []int64{1}, WorkingHours: []string{"11:35-14:05"}},
			{ID: 2, VehicleType: "rocket", Regions: []int64{1}, WorkingHours: []string{"11:35-14:05"}},
			{ID: 3, VehicleType: "bike", Regions: nil, WorkingHours: []string{"11:35-14:05"}},
			{ID: 4, VehicleType: "bike", Regions: []int64{1}, WorkingHours: []string{"22:00-02:00"}},
			{ID: 5, VehicleType: "bike", Regions: []int64{-1}, WorkingHours: []string{"9:00-10:00"}},
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		var invalid *commands.InvalidItemsError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "couriers", invalid.ParamName)
		assert.Equal(t, []int64{2, 3, 4, 5}, invalid.IDs())
	})

	t.Run("rejects an empty request", func(t *testing.T) {
		_, err := commands.NewCreateCouriersCommand(nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		require.ErrorIs(t, commands.CreateCouriersCommand{}.Validate(), commands.ErrCreateCouriersCommandIsNotConstructed)
	})
}
