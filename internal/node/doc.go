// Package node runs the transmit side of the measurement experiment: every
// measurement interval it surveys for the target WLAN, builds a payload
// from the outcome, encodes a frame and hands it to the radio.
//
// The message counter starts at 1, increments once per cycle and wraps
// naturally at 32 bits; receivers use the gaps for passive loss detection.
// There is no retransmission and no acknowledgment - the link is
// fire-and-forget by design.
//
// All errors are returned to the caller. A failed scan or a failed
// transmission does not stop the loop; a cancelled context does.
package node
