package telemetry

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valab/w515ctl/pkg/pump"
)

func TestSink_AppendsInArrivalOrder(t *testing.T) {
	sink := NewSink(16, nil)

	for i := 1; i <= 5; i++ {
		sink.Push(pump.Sample{Timestamp: float64(i), PumpRate: uint16(i * 100)})
	}
	sink.Close()

	samples := sink.Samples()
	require.Len(t, samples, 5)
	for i, sample := range samples {
		assert.Equal(t, float64(i+1), sample.Timestamp)
		assert.Equal(t, uint16((i+1)*100), sample.PumpRate)
	}
}

func TestSink_HandlersSeeEverySample(t *testing.T) {
	sink := NewSink(16, nil)

	var mu sync.Mutex
	var seen []float64
	sink.OnSample(func(s pump.Sample) {
		mu.Lock()
		seen = append(seen, s.Timestamp)
		mu.Unlock()
	})

	sink.Push(pump.Sample{Timestamp: 1.5})
	sink.Push(pump.Sample{Timestamp: 2.5})
	sink.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []float64{1.5, 2.5}, seen)
}

func TestSink_CloseIdempotent(t *testing.T) {
	sink := NewSink(4, nil)
	sink.Close()
	assert.NotPanics(t, func() { sink.Close() })
}

func TestSink_WriteCSV(t *testing.T) {
	sink := NewSink(16, nil)
	sink.Push(pump.Sample{Timestamp: 12.5, PSI: 1450, MotorCurrent: 230, PumpRate: 1000})
	sink.Push(pump.Sample{Timestamp: 13.5, PSI: 1448, MotorCurrent: 231, PumpRate: 1000})
	sink.Close()

	var buf bytes.Buffer
	require.NoError(t, sink.WriteCSV(&buf))

	want := "Timestamp,PSI,MotorCurrent,PumpRate\n" +
		"12.500,1450,230,1000\n" +
		"13.500,1448,231,1000\n"
	assert.Equal(t, want, buf.String())
}
