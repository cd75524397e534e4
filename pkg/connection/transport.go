package connection

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-ble/ble"
	"github.com/go-ble/ble/linux"
	"github.com/sirupsen/logrus"
)

// Transport opens links to the pump. The production implementation
// rides on go-ble; tests inject scripted fakes.
type Transport interface {
	Dial(ctx context.Context, address string) (Link, error)
}

// Link is one established BLE session with discovered characteristics.
type Link interface {
	Subscribe(char ble.UUID, fn func([]byte)) error
	Write(char ble.UUID, payload []byte) error
	Connected() bool
	Close() error
}

// BLETransport dials over the host's HCI device.
type BLETransport struct {
	logger  *logrus.Logger
	once    sync.Once
	initErr error
}

// NewBLETransport creates a transport. The HCI device is opened
// lazily on first dial and shared across reconnects.
func NewBLETransport(logger *logrus.Logger) *BLETransport {
	if logger == nil {
		logger = logrus.New()
	}
	return &BLETransport{logger: logger}
}

func (t *BLETransport) Dial(ctx context.Context, address string) (Link, error) {
	t.once.Do(func() {
		dev, err := linux.NewDevice()
		if err != nil {
			t.initErr = fmt.Errorf("failed to open HCI device: %w", err)
			return
		}
		ble.SetDefaultDevice(dev)
	})
	if t.initErr != nil {
		return nil, t.initErr
	}

	t.logger.WithField("address", address).Info("Connecting to BLE device...")
	client, err := ble.Dial(ctx, ble.NewAddr(address))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to device: %w", err)
	}

	t.logger.Info("Connected to device, discovering services...")
	profile, err := client.DiscoverProfile(true)
	if err != nil {
		client.CancelConnection()
		return nil, fmt.Errorf("failed to discover profile: %w", err)
	}

	chars := make(map[string]*ble.Characteristic)
	for _, svc := range profile.Services {
		for _, char := range svc.Characteristics {
			chars[char.UUID.String()] = char
		}
	}
	t.logger.WithField("characteristics", len(chars)).Info("Service discovery completed")

	return &bleLink{client: client, chars: chars, logger: t.logger}, nil
}

// bleLink wraps a go-ble client with characteristic lookup and write
// serialization.
type bleLink struct {
	client  ble.Client
	chars   map[string]*ble.Characteristic
	writeMu sync.Mutex
	logger  *logrus.Logger
}

func (l *bleLink) characteristic(u ble.UUID) (*ble.Characteristic, error) {
	char, ok := l.chars[u.String()]
	if !ok {
		return nil, fmt.Errorf("characteristic %s not found", u.String())
	}
	return char, nil
}

func (l *bleLink) Subscribe(u ble.UUID, fn func([]byte)) error {
	char, err := l.characteristic(u)
	if err != nil {
		return err
	}
	return l.client.Subscribe(char, false, fn)
}

func (l *bleLink) Write(u ble.UUID, payload []byte) error {
	char, err := l.characteristic(u)
	if err != nil {
		return err
	}

	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	if err := l.client.WriteCharacteristic(char, payload, false); err != nil {
		return err
	}
	l.logger.WithFields(logrus.Fields{
		"uuid":  u.String(),
		"bytes": len(payload),
	}).Debug("Wrote command to characteristic")
	return nil
}

func (l *bleLink) Connected() bool {
	select {
	case <-l.client.Disconnected():
		return false
	default:
		return true
	}
}

func (l *bleLink) Close() error {
	return l.client.CancelConnection()
}
