package pump

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertRate(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		unit string
		want int
	}{
		{name: "microliters pass through", rate: 500, unit: UnitMicroliters, want: 500},
		{name: "microliters truncate", rate: 499.9, unit: UnitMicroliters, want: 499},
		{name: "milliliters scale by 1000", rate: 2, unit: UnitMilliliters, want: 2000},
		{name: "milliliters fractional", rate: 0.5, unit: UnitMilliliters, want: 500},
		{name: "milliliters truncate", rate: 1.2345, unit: UnitMilliliters, want: 1234},
		{name: "zero", rate: 0, unit: UnitMicroliters, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertRate(tt.rate, tt.unit)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertRate_InvalidUnit(t *testing.T) {
	for _, unit := range []string{"", "L/min", "ml/min", "uL/min"} {
		_, err := ConvertRate(100, unit)

		var invalidUnit *InvalidUnitError
		assert.ErrorAs(t, err, &invalidUnit, "unit %q", unit)
		assert.Equal(t, unit, invalidUnit.Unit)
	}
}
