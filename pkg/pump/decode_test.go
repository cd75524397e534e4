package pump

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func telemetryFrame(ms uint32, psi, current, rate uint16) []byte {
	frame := make([]byte, 12)
	binary.LittleEndian.PutUint32(frame[0:4], ms)
	binary.LittleEndian.PutUint16(frame[4:6], psi)
	binary.LittleEndian.PutUint16(frame[6:8], current)
	binary.LittleEndian.PutUint16(frame[8:10], rate)
	return frame
}

func TestDecodeTelemetry(t *testing.T) {
	sample, err := DecodeTelemetry(telemetryFrame(12500, 1450, 230, 1000))
	require.NoError(t, err)

	assert.Equal(t, 12.5, sample.Timestamp)
	assert.Equal(t, uint16(1450), sample.PSI)
	assert.Equal(t, uint16(230), sample.MotorCurrent)
	assert.Equal(t, uint16(1000), sample.PumpRate)
}

func TestDecodeTelemetry_ReservedBytesIgnored(t *testing.T) {
	frame := telemetryFrame(1000, 1, 2, 3)
	frame[10] = 0xFF
	frame[11] = 0xFF

	sample, err := DecodeTelemetry(frame)
	require.NoError(t, err)
	assert.Equal(t, Sample{Timestamp: 1.0, PSI: 1, MotorCurrent: 2, PumpRate: 3}, sample)
}

func TestDecodeTelemetry_UnexpectedLength(t *testing.T) {
	for _, n := range []int{0, 1, 11, 13, 24} {
		_, err := DecodeTelemetry(make([]byte, n))

		var badLen *UnexpectedLengthError
		require.ErrorAs(t, err, &badLen, "length %d", n)
		assert.Equal(t, n, badLen.Len)
	}
}
