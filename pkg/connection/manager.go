// Package connection owns the BLE session with the pump: the
// connect/subscribe/reconnect state machine, the single-consumer
// command queue, and the drive loop that keeps the session alive for
// the process lifetime.
package connection

import (
	"context"
	"sync"
	"time"

	"github.com/mcuadros/go-defaults"
	"github.com/sirupsen/logrus"

	"github.com/valab/w515ctl/pkg/pump"
)

// Options configures session timing. Retry is unbounded: the pump is
// expected to be intermittently reachable and operators need prompt
// reconnection during unattended runs.
type Options struct {
	ConnectTimeout   time.Duration `default:"30s"`
	WriteTimeout     time.Duration `default:"5s"`
	LivenessInterval time.Duration `default:"1s"`
	RetryInterval    time.Duration `default:"5s"`
	QueueSize        int           `default:"16"`
}

// DefaultOptions returns the default session timing.
func DefaultOptions() *Options {
	opts := new(Options)
	defaults.SetDefaults(opts)
	return opts
}

type writeRequest struct {
	cmd   pump.Command
	reply chan error
}

// Manager drives one BLE session with one pump. All writes — drive
// loop bring-up, scheduler steps, manual commands — funnel through a
// single consumer goroutine so multi-byte payloads never interleave.
type Manager struct {
	address   string
	transport Transport
	opts      *Options
	logger    *logrus.Logger

	mu      sync.RWMutex
	state   State
	link    Link
	handler func(pump.Sample)

	notifyMu sync.Mutex

	queue     chan writeRequest
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewManager creates a manager for the pump at the given BLE address
// and starts its command queue consumer. A nil transport gets the
// go-ble implementation; nil opts get DefaultOptions.
func NewManager(address string, transport Transport, opts *Options, logger *logrus.Logger) *Manager {
	if logger == nil {
		logger = logrus.New()
	}
	if transport == nil {
		transport = NewBLETransport(logger)
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	m := &Manager{
		address:   address,
		transport: transport,
		opts:      opts,
		logger:    logger,
		state:     StateDisconnected,
		queue:     make(chan writeRequest, opts.QueueSize),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go m.consume()
	return m
}

// State returns the current session state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Manager) setStateLocked(next State) {
	if m.state == next {
		return
	}
	m.logger.WithFields(logrus.Fields{
		"from": m.state.String(),
		"to":   next.String(),
	}).Debug("Session state changed")
	m.state = next
}

// SetSampleHandler registers the telemetry callback the drive loop
// uses when it (re)subscribes. Call before Run.
func (m *Manager) SetSampleHandler(fn func(pump.Sample)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = fn
}

// Connect dials the pump and performs service discovery, bounded by
// ConnectTimeout. During a reconnect cycle the state stays
// reconnecting until the session is live again.
func (m *Manager) Connect(ctx context.Context) error {
	m.mu.Lock()
	if m.link != nil {
		m.mu.Unlock()
		return &ConnectError{Err: ErrAlreadyConnected}
	}
	if m.state != StateReconnecting {
		m.setStateLocked(StateConnecting)
	}
	m.mu.Unlock()

	dialCtx, cancel := context.WithTimeout(ctx, m.opts.ConnectTimeout)
	defer cancel()

	link, err := m.transport.Dial(dialCtx, m.address)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		if m.state != StateReconnecting {
			m.setStateLocked(StateDisconnected)
		}
		return &ConnectError{Err: err}
	}
	m.link = link
	if m.state != StateReconnecting {
		m.setStateLocked(StateSubscribing)
	}
	return nil
}

// Subscribe registers the telemetry callback and subscribes to the
// notify characteristic. A nil fn reuses the previously registered
// callback (the drive loop's resubscribe path). Frames are decoded
// here; malformed frames are logged and discarded. Delivery is
// serial, in arrival order.
func (m *Manager) Subscribe(fn func(pump.Sample)) error {
	m.mu.Lock()
	if fn != nil {
		m.handler = fn
	}
	link := m.link
	m.mu.Unlock()

	if link == nil {
		return &SubscribeError{Err: ErrNotConnected}
	}

	if err := link.Subscribe(pump.TelemetryCharUUID, m.handleNotification); err != nil {
		m.mu.Lock()
		if m.state != StateReconnecting {
			m.setStateLocked(StateDisconnected)
		}
		m.mu.Unlock()
		return &SubscribeError{Err: err}
	}

	m.mu.Lock()
	m.setStateLocked(StateLive)
	m.mu.Unlock()
	m.logger.WithField("uuid", pump.TelemetryCharUUID.String()).Info("Subscribed to telemetry notifications")
	return nil
}

func (m *Manager) handleNotification(data []byte) {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	sample, err := pump.DecodeTelemetry(data)
	if err != nil {
		m.logger.WithError(err).Warn("Discarding telemetry frame")
		return
	}

	m.mu.RLock()
	handler := m.handler
	m.mu.RUnlock()
	if handler != nil {
		handler(sample)
	}
}

// Submit queues a command and waits for the write to complete.
// Failure means the command is not guaranteed delivered; no retry is
// performed here.
func (m *Manager) Submit(cmd pump.Command) error {
	select {
	case <-m.quit:
		return &WriteError{Err: ErrClosed}
	default:
	}

	req := writeRequest{cmd: cmd, reply: make(chan error, 1)}
	select {
	case m.queue <- req:
	case <-m.quit:
		return &WriteError{Err: ErrClosed}
	}
	select {
	case err := <-req.reply:
		return err
	case <-m.quit:
		return &WriteError{Err: ErrClosed}
	}
}

func (m *Manager) consume() {
	defer close(m.done)
	for {
		select {
		case <-m.quit:
			return
		case req := <-m.queue:
			req.reply <- m.write(req.cmd)
		}
	}
}

func (m *Manager) write(cmd pump.Command) error {
	m.mu.RLock()
	link := m.link
	m.mu.RUnlock()

	if link == nil || !link.Connected() {
		return &WriteError{Err: ErrNotConnected}
	}

	// The link serializes the transport write; the timeout only
	// bounds how long the caller waits for it.
	errc := make(chan error, 1)
	go func() { errc <- link.Write(cmd.Characteristic, cmd.Payload) }()

	timer := time.NewTimer(m.opts.WriteTimeout)
	defer timer.Stop()
	select {
	case err := <-errc:
		if err != nil {
			return &WriteError{Err: err}
		}
		return nil
	case <-timer.C:
		return &WriteError{Err: context.DeadlineExceeded}
	}
}

// IsLive reports whether the link is up.
func (m *Manager) IsLive() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.link != nil && m.link.Connected()
}

// Disconnect tears the session down, best effort. Valid from any
// state; teardown failures are logged, not propagated.
func (m *Manager) Disconnect() {
	m.dropLink(StateDisconnected)
}

func (m *Manager) dropLink(next State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.link != nil {
		if err := m.link.Close(); err != nil {
			m.logger.WithError(err).Warn("Error disconnecting from pump")
		}
		m.link = nil
	}
	m.setStateLocked(next)
}

// Run is the drive loop: connect, subscribe, poll liveness, and on
// loss disconnect, wait RetryInterval, and start over. It owns the
// session until ctx is cancelled and never gives up on its own; a
// failed BLE operation only triggers the next reconnect cycle.
func (m *Manager) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			m.Disconnect()
			return err
		}

		if err := m.Connect(ctx); err != nil {
			m.logger.WithError(err).Error("Connection attempt failed")
			if !sleepCtx(ctx, m.opts.RetryInterval) {
				m.Disconnect()
				return ctx.Err()
			}
			continue
		}

		if err := m.Subscribe(nil); err != nil {
			m.logger.WithError(err).Error("Telemetry subscription failed")
			next := StateDisconnected
			if m.State() == StateReconnecting {
				next = StateReconnecting
			}
			m.dropLink(next)
			if !sleepCtx(ctx, m.opts.RetryInterval) {
				return ctx.Err()
			}
			continue
		}

		m.logger.WithField("address", m.address).Info("Pump session live")
		for m.IsLive() {
			if !sleepCtx(ctx, m.opts.LivenessInterval) {
				m.Disconnect()
				return ctx.Err()
			}
		}

		m.logger.Warn("Pump connection lost, reconnecting...")
		m.dropLink(StateReconnecting)
		if !sleepCtx(ctx, m.opts.RetryInterval) {
			return ctx.Err()
		}
	}
}

// Close shuts down the command queue and drops the link. Pending
// Submit calls fail with ErrClosed.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.quit)
		<-m.done
	})
	m.dropLink(StateDisconnected)
}

// sleepCtx sleeps for d, returning false if ctx is done first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
