package pump

import (
	"encoding/binary"
	"math"
)

// EncodeButtonPress encodes a front-panel button press as the two mux
// channel bytes the controller expects.
func EncodeButtonPress(label Button) (Command, error) {
	channels, ok := muxChannels[label]
	if !ok {
		return Command{}, &UnknownButtonError{Label: label}
	}
	return Command{
		Characteristic: ButtonCharUUID,
		Payload:        []byte{channels[0], channels[1]},
	}, nil
}

// EncodeRate encodes a pump rate in whole µL/min. Range validation
// against [MinRate, MaxRate] is the caller's job; only the wire width
// is checked here.
func EncodeRate(rate int) (Command, error) {
	payload, err := encodeUint16("pump rate", rate)
	if err != nil {
		return Command{}, err
	}
	return Command{Characteristic: RateCharUUID, Payload: payload}, nil
}

// EncodeInterval encodes the telemetry measurement interval in
// milliseconds. Valid range at the caller boundary is
// [MinIntervalMs, MaxIntervalMs].
func EncodeInterval(ms int) (Command, error) {
	payload, err := encodeUint16("measurement interval", ms)
	if err != nil {
		return Command{}, err
	}
	return Command{Characteristic: IntervalCharUUID, Payload: payload}, nil
}

func encodeUint16(field string, v int) ([]byte, error) {
	if v < 0 || v > math.MaxUint16 {
		return nil, &OverflowError{Field: field, Value: v}
	}
	payload := make([]byte, 2)
	binary.LittleEndian.PutUint16(payload, uint16(v))
	return payload, nil
}
