package protocol

import (
	"encoding/binary"
	"fmt"
)

// Encode assembles a complete radio frame from a node id, a message counter
// and payload bytes produced by the Policy. The payload length must be one
// of the two defined shapes; anything else is rejected before any output is
// produced. The frame size check should never fire with the fixed shapes,
// but the payload length is policy-supplied, so it is verified anyway.
func Encode(nodeID uint16, msgCnt uint32, payload []byte) ([]byte, error) {
	if len(payload) != PresentPayloadSize && len(payload) != AbsentPayloadSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrPayloadShape, len(payload))
	}

	size := HeaderSize + len(payload) + ChecksumSize
	if size > MaxFrameSize {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrFrameTooLarge, size, MaxFrameSize)
	}

	frame := make([]byte, size)
	binary.BigEndian.PutUint16(frame[NodeIDOffset:], nodeID)
	binary.BigEndian.PutUint32(frame[MsgCntOffset:], msgCnt)
	frame[MsgLenOffset] = byte(len(payload))
	copy(frame[PayloadOffset:], payload)

	crc := Checksum(frame[:PayloadOffset+len(payload)])
	binary.BigEndian.PutUint32(frame[PayloadOffset+len(payload):], crc)

	return frame, nil
}

// Decode validates raw and parses it into a Record. Checks run in a fixed
// order and the first failure is terminal for the frame:
//
//  1. minimum length (header + checksum)
//  2. length field against the bytes actually present
//  3. payload shape (3 or 8)
//  4. CRC-32 over everything before the checksum field
//
// Only a frame that passes all four yields a Record.
func Decode(raw []byte) (*Record, error) {
	if len(raw) < MinFrameSize {
		return nil, fmt.Errorf("%w: %d bytes (minimum %d)", ErrFrameTooShort, len(raw), MinFrameSize)
	}

	nodeID := binary.BigEndian.Uint16(raw[NodeIDOffset:])
	msgCnt := binary.BigEndian.Uint32(raw[MsgCntOffset:])
	msgLen := int(raw[MsgLenOffset])

	// The shape is already known to be wrong on a mismatch, so reject
	// before spending time on the checksum.
	got := len(raw) - HeaderSize - ChecksumSize
	if got != msgLen {
		return nil, fmt.Errorf("%w: length field %d, payload %d bytes", ErrLengthMismatch, msgLen, got)
	}

	if msgLen != PresentPayloadSize && msgLen != AbsentPayloadSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrPayloadShape, msgLen)
	}

	body := raw[:HeaderSize+msgLen]
	want := binary.BigEndian.Uint32(raw[HeaderSize+msgLen:])
	if sum := Checksum(body); sum != want {
		return nil, fmt.Errorf("%w: computed %08x, frame carries %08x", ErrChecksum, sum, want)
	}

	rec := &Record{
		NodeID: nodeID,
		MsgCnt: msgCnt,
	}

	payload := raw[PayloadOffset : PayloadOffset+msgLen]
	if msgLen == PresentPayloadSize {
		rec.Shape = ShapePresent
		rec.RSSI = int8(payload[0])
		rec.Channel = payload[1]
		copy(rec.BSSID[:], payload[2:])
	} else {
		rec.Shape = ShapeAbsent
		copy(rec.Sentinel[:], payload)
	}

	return rec, nil
}
