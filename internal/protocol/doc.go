// Package protocol implements the binary packet format exchanged between a
// measurement node and the receiving gateways over the LoRa link.
//
// # Wire Format
//
// Every frame is laid out the same way, with all multi-byte integers in
// big-endian order regardless of the host platform:
//
//	offset  size  field
//	0       2     node id    (uint16, big-endian)
//	2       4     msg count  (uint32, big-endian, wraps on overflow)
//	6       1     msg length (uint8, 3 or 8)
//	7       N     payload    (N = msg length)
//	7+N     4     CRC-32     (uint32, big-endian, over bytes 0..7+N)
//
// The total frame size must never exceed 256 bytes, which is the limit of
// the raw LoRa framing underneath.
//
// # Payload Shapes
//
// The payload takes one of exactly two shapes, distinguished by the length
// field alone:
//
//   - 8 bytes: a measurement of the target WLAN - signed RSSI, channel
//     number and the 6-byte BSSID of the access point, in that order.
//   - 3 bytes: the configured sentinel value repeated three times, meaning
//     the target was not observed this cycle.
//
// Any other length is a decode error.
//
// # Checksum
//
// The trailing CRC-32 covers every preceding byte of the frame. Checksum is
// bit-compatible with the ubiquitous CRC-32 (reversed polynomial 0xEDB88320,
// initial value 0xFFFFFFFF, final complement) so the host-side logging
// system can verify frames independently.
//
// # Error Handling
//
// Encode and Decode return sentinel errors (ErrPayloadShape, ErrFrameTooLarge,
// ErrFrameTooShort, ErrLengthMismatch, ErrChecksum) that callers match with
// errors.Is. A frame that fails any check yields no Record at all; there are
// no partial results.
//
// # Thread Safety
//
// All functions in this package are pure and stateless: they perform no I/O,
// keep no state between calls, and are safe for concurrent use.
package protocol
