package protocol

import "errors"

// Codec errors. All of them are local to a single frame and recoverable by
// the caller; a gateway is expected to log the reject and wait for the next
// frame. Wrapped values carry the offending numbers, match with errors.Is.
var (
	// ErrPayloadShape reports a payload length that is neither of the two
	// policy-defined shapes. The encoder returns it for a bad payload
	// argument and the decoder for a bad length field.
	ErrPayloadShape = errors.New("payload length is not a known shape")

	// ErrFrameTooLarge reports a frame that would exceed the radio framing
	// limit of MaxFrameSize bytes.
	ErrFrameTooLarge = errors.New("frame exceeds radio size limit")

	// ErrFrameTooShort reports received data shorter than the fixed header
	// plus trailing checksum.
	ErrFrameTooShort = errors.New("frame too short")

	// ErrLengthMismatch reports a length field that disagrees with the
	// number of payload bytes actually present.
	ErrLengthMismatch = errors.New("length field does not match payload")

	// ErrChecksum reports a CRC-32 mismatch. The frame is corrupted and
	// must be dropped, never logged as data.
	ErrChecksum = errors.New("checksum mismatch")
)
