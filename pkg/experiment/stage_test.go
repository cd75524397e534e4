package experiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStage_Validate(t *testing.T) {
	tests := []struct {
		name      string
		stage     Stage
		wantField string // empty means valid
	}{
		{name: "valid static", stage: Static(1000, 5)},
		{name: "valid ramp", stage: Ramp(1000, 2000, 10)},
		{name: "static rate at bounds low", stage: Static(1, 1)},
		{name: "static rate at bounds high", stage: Static(10000, 1)},
		{name: "static zero rate", stage: Static(0, 1), wantField: "rate"},
		{name: "static rate too high", stage: Static(10001, 1), wantField: "rate"},
		{name: "static zero duration", stage: Static(500, 0), wantField: "duration"},
		{name: "static negative duration", stage: Static(500, -1), wantField: "duration"},
		{name: "ramp zero start", stage: Ramp(0, 2000, 1), wantField: "start_rate"},
		{name: "ramp start too high", stage: Ramp(10001, 2000, 1), wantField: "start_rate"},
		{name: "ramp zero end", stage: Ramp(1000, 0, 1), wantField: "end_rate"},
		{name: "ramp end too high", stage: Ramp(1000, 20000, 1), wantField: "end_rate"},
		{name: "ramp zero duration", stage: Ramp(1000, 2000, 0), wantField: "duration"},
		{name: "unknown kind", stage: Stage{Kind: "pulse", Rate: 100, Duration: 1}, wantField: "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.stage.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var invalid *InvalidStageError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.wantField, invalid.Field)
		})
	}
}

func TestPlan(t *testing.T) {
	stages := Plan(1000, 2, 2000, 10, 30, 500, 5)

	require.Len(t, stages, 4)
	assert.Equal(t, Static(1000, 2), stages[0])
	assert.Equal(t, Ramp(1000, 2000, 10), stages[1])
	assert.Equal(t, Static(2000, 30), stages[2])
	assert.Equal(t, Ramp(2000, 500, 5), stages[3])

	for i, stage := range stages {
		assert.NoError(t, stage.Validate(), "stage %d", i+1)
	}
}
