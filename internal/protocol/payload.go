package protocol

// Policy builds payload bytes from a measurement attempt's outcome. The
// sentinel byte is deployment configuration, not part of the protocol; its
// shape (three copies) is.
type Policy struct {
	Sentinel byte
}

// Present returns the 8-byte payload for an observed target. The RSSI is a
// signed quantity and goes on the wire in two's-complement form; the BSSID
// bytes are copied in the order the radio driver reported them.
func (p Policy) Present(rssi int8, channel uint8, bssid [6]byte) []byte {
	buf := make([]byte, PresentPayloadSize)
	buf[0] = byte(rssi)
	buf[1] = channel
	copy(buf[2:], bssid[:])
	return buf
}

// Absent returns the 3-byte not-observed payload: the sentinel repeated.
func (p Policy) Absent() []byte {
	return []byte{p.Sentinel, p.Sentinel, p.Sentinel}
}

// IsAbsentPayload reports whether an absent-shape record carries the
// configured sentinel in all three positions. A decoder succeeds without
// knowing the sentinel; this is the follow-up check for callers that do.
func (p Policy) IsAbsentPayload(r *Record) bool {
	if r.Shape != ShapeAbsent {
		return false
	}
	for _, b := range r.Sentinel {
		if b != p.Sentinel {
			return false
		}
	}
	return true
}
