// Package telemetry collects decoded pump samples and serves them to
// consumers: live readouts, CSV export.
package telemetry

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/valab/w515ctl/internal/ringchan"
	"github.com/valab/w515ctl/pkg/pump"
)

// Handler receives samples in arrival order, one at a time.
type Handler func(pump.Sample)

// Sink is an append-only store of telemetry samples with non-blocking
// ingestion. Push never blocks the notification path: samples go
// through a bounded overwrite-oldest buffer and a single drainer
// goroutine appends them and fans out to handlers.
type Sink struct {
	in     *ringchan.RingChannel[pump.Sample]
	logger *logrus.Logger

	mu       sync.Mutex
	samples  []pump.Sample
	handlers []Handler

	drained chan struct{}
	closeMu sync.Mutex
	closed  bool
}

// NewSink creates a Sink with the given ingestion buffer capacity and
// starts its drainer.
func NewSink(buffer int, logger *logrus.Logger) *Sink {
	if logger == nil {
		logger = logrus.New()
	}
	s := &Sink{
		in:      ringchan.New[pump.Sample](buffer),
		logger:  logger,
		drained: make(chan struct{}),
	}
	go s.drain()
	return s
}

// Push hands a sample to the sink. It never blocks; if the drainer
// falls behind the buffer capacity, the oldest pending sample is
// dropped.
func (s *Sink) Push(sample pump.Sample) {
	s.in.Send(sample)
}

// OnSample registers a handler invoked for every drained sample.
// Handlers run on the drainer goroutine, serially.
func (s *Sink) OnSample(h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, h)
}

func (s *Sink) drain() {
	defer close(s.drained)
	for sample := range s.in.C() {
		s.mu.Lock()
		s.samples = append(s.samples, sample)
		handlers := make([]Handler, len(s.handlers))
		copy(handlers, s.handlers)
		s.mu.Unlock()

		for _, h := range handlers {
			h(sample)
		}
	}
}

// Samples returns a snapshot of all collected samples in arrival order.
func (s *Sink) Samples() []pump.Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]pump.Sample, len(s.samples))
	copy(out, s.samples)
	return out
}

// Len returns the number of collected samples.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.samples)
}

// Close stops ingestion and waits for pending samples to be drained.
// Push after Close panics; close the producer side first.
func (s *Sink) Close() {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.in.Close()
	<-s.drained
	s.logger.WithField("samples", s.Len()).Debug("Telemetry sink closed")
}
