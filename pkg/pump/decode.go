package pump

import "encoding/binary"

// telemetryFrameLen is the fixed size of a telemetry notification.
// The last two bytes are reserved by the controller firmware.
const telemetryFrameLen = 12

// Sample is one decoded telemetry frame.
type Sample struct {
	// Timestamp is seconds since the device booted, derived from a
	// 32-bit millisecond counter. The counter wraps after ~49.7 days
	// of device uptime; wraps are reported as received, not spliced.
	Timestamp    float64
	PSI          uint16
	MotorCurrent uint16
	PumpRate     uint16
}

// DecodeTelemetry parses a 12-byte telemetry frame. All fields are
// little-endian: u32 milliseconds, u16 PSI, u16 motor current,
// u16 pump rate, 2 reserved bytes.
func DecodeTelemetry(frame []byte) (Sample, error) {
	if len(frame) != telemetryFrameLen {
		return Sample{}, &UnexpectedLengthError{Len: len(frame)}
	}
	return Sample{
		Timestamp:    float64(binary.LittleEndian.Uint32(frame[0:4])) / 1000.0,
		PSI:          binary.LittleEndian.Uint16(frame[4:6]),
		MotorCurrent: binary.LittleEndian.Uint16(frame[6:8]),
		PumpRate:     binary.LittleEndian.Uint16(frame[8:10]),
	}, nil
}
