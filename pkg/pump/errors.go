package pump

import "fmt"

// InvalidUnitError reports a flow-rate unit that is neither µL/min nor mL/min.
type InvalidUnitError struct {
	Unit string
}

func (e *InvalidUnitError) Error() string {
	return fmt.Sprintf("invalid unit %q: specify either %q or %q", e.Unit, UnitMilliliters, UnitMicroliters)
}

// UnknownButtonError reports a button label outside the fixed mapping.
type UnknownButtonError struct {
	Label Button
}

func (e *UnknownButtonError) Error() string {
	return fmt.Sprintf("unknown button label %q, valid labels are %v", string(e.Label), buttonOrder)
}

// OverflowError reports a value that does not fit the 16-bit wire field.
type OverflowError struct {
	Field string
	Value int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%s %d does not fit an unsigned 16-bit field", e.Field, e.Value)
}

// UnexpectedLengthError reports a telemetry frame of the wrong size.
// Callers log and discard the frame; it is never fatal.
type UnexpectedLengthError struct {
	Len int
}

func (e *UnexpectedLengthError) Error() string {
	return fmt.Sprintf("unexpected telemetry frame length %d, want %d", e.Len, telemetryFrameLen)
}
