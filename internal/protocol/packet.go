package protocol

import (
	"encoding/hex"
	"fmt"
)

// Frame layout constants. Offsets are fixed; only the payload varies.
const (
	NodeIDOffset  = 0
	MsgCntOffset  = 2
	MsgLenOffset  = 6
	PayloadOffset = 7

	// HeaderSize covers node id, msg count and the length byte.
	HeaderSize = PayloadOffset

	// ChecksumSize is the trailing CRC-32 field.
	ChecksumSize = 4

	// MinFrameSize is the smallest byte count Decode will consider: the
	// fixed header plus the trailing checksum, with no payload in between.
	MinFrameSize = HeaderSize + ChecksumSize

	// MaxFrameSize is the raw LoRa framing limit. Encode refuses to build a
	// larger frame rather than truncate it.
	MaxFrameSize = 256

	// PresentPayloadSize is the payload length when the target WLAN was
	// observed: RSSI (1), channel (1), BSSID (6).
	PresentPayloadSize = 8

	// AbsentPayloadSize is the payload length when it was not: the sentinel
	// byte repeated three times.
	AbsentPayloadSize = 3
)

// Shape identifies which of the two payload layouts a frame carries.
type Shape int

const (
	// ShapeAbsent means the target WLAN was not observed; the payload is
	// three sentinel bytes.
	ShapeAbsent Shape = iota

	// ShapePresent means the payload carries a measurement.
	ShapePresent
)

// String returns a human-readable shape name.
func (s Shape) String() string {
	switch s {
	case ShapeAbsent:
		return "absent"
	case ShapePresent:
		return "present"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Record is the validated result of decoding a frame. It is constructed
// fresh for every inbound frame and never mutated afterwards.
type Record struct {
	NodeID uint16
	MsgCnt uint32
	Shape  Shape

	// Measurement fields, meaningful only when Shape is ShapePresent.
	RSSI    int8    // signed, dBm
	Channel uint8   // WLAN channel number
	BSSID   [6]byte // hardware address as reported, not reordered

	// Sentinel holds the three payload bytes of an absent-shape frame as
	// received. The decoder does not compare them against the configured
	// sentinel; that is the caller's call.
	Sentinel [AbsentPayloadSize]byte
}

// Payload rebuilds the wire payload bytes for the record.
func (r *Record) Payload() []byte {
	if r.Shape == ShapePresent {
		p := make([]byte, PresentPayloadSize)
		p[0] = byte(r.RSSI)
		p[1] = r.Channel
		copy(p[2:], r.BSSID[:])
		return p
	}
	p := make([]byte, AbsentPayloadSize)
	copy(p, r.Sentinel[:])
	return p
}

// String returns a debug representation of the record.
func (r *Record) String() string {
	if r.Shape == ShapePresent {
		return fmt.Sprintf("Record{node=%d, cnt=%d, rssi=%d dBm, channel=%d, bssid=%s}",
			r.NodeID, r.MsgCnt, r.RSSI, r.Channel, hex.EncodeToString(r.BSSID[:]))
	}
	return fmt.Sprintf("Record{node=%d, cnt=%d, absent=%s}",
		r.NodeID, r.MsgCnt, hex.EncodeToString(r.Sentinel[:]))
}
