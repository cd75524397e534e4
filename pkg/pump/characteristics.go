// Package pump implements the wire protocol of the BLE controller
// board fitted to a Waters 515 HPLC pump: characteristic UUIDs,
// command encoding, and telemetry frame decoding.
package pump

import "github.com/go-ble/ble"

// TelemetryCharUUID is the notify characteristic carrying 12-byte telemetry frames
var TelemetryCharUUID = ble.MustParse("000055A5-0000-1000-8000-00805F9B34FB")

// IntervalCharUUID is the write characteristic setting the telemetry interval in milliseconds
var IntervalCharUUID = ble.MustParse("000055A7-0000-1000-8000-00805F9B34FB")

// ButtonCharUUID is the write characteristic simulating front-panel button presses
var ButtonCharUUID = ble.MustParse("000055A8-0000-1000-8000-00805F9B34FB")

// RateCharUUID is the write characteristic setting the pump rate in µL/min
var RateCharUUID = ble.MustParse("000055A9-0000-1000-8000-00805F9B34FB")

// Command is an encoded write against one of the pump's characteristics.
type Command struct {
	Characteristic ble.UUID
	Payload        []byte
}
