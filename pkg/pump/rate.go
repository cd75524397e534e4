package pump

// Flow-rate units accepted by ConvertRate.
const (
	UnitMicroliters = "µL/min"
	UnitMilliliters = "mL/min"
)

// Rate and interval bounds enforced at the caller boundary
// (scheduler, CLI); the encoders only check the wire width.
const (
	MinRate = 1
	MaxRate = 10000

	MinIntervalMs = 1
	MaxIntervalMs = 16000
)

// ConvertRate converts a flow rate to the wire unit, whole µL/min.
// Fractions truncate toward zero.
func ConvertRate(rate float64, unit string) (int, error) {
	switch unit {
	case UnitMilliliters:
		return int(rate * 1000), nil
	case UnitMicroliters:
		return int(rate), nil
	default:
		return 0, &InvalidUnitError{Unit: unit}
	}
}
