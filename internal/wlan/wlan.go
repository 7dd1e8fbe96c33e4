// Package wlan provides the measurement source for the node: a survey of
// the local 2.4 GHz neighbourhood looking for one target SSID.
//
// The node does not associate with the target network; it only records the
// RSSI, channel and BSSID the scan reports. On Linux the scan shells out to
// iw(8); the output parser is a pure function so it can be tested against
// captured scan dumps.
package wlan

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
)

// Measurement is one observation of the target network.
type Measurement struct {
	RSSI    int8    // signal strength, dBm
	Channel uint8   // 802.11 channel number
	BSSID   [6]byte // access point hardware address, as reported
}

// String returns a compact representation for logging.
func (m *Measurement) String() string {
	return fmt.Sprintf("rssi=%d dBm channel=%d bssid=%s", m.RSSI, m.Channel, formatBSSID(m.BSSID))
}

// Scanner surveys for a target SSID. Implementations return found=false,
// with a nil error, when the scan succeeded but the SSID was not seen.
type Scanner interface {
	Scan(ctx context.Context, ssid string) (m *Measurement, found bool, err error)
}

func formatBSSID(b [6]byte) string {
	parts := make([]string, len(b))
	for i, x := range b {
		parts[i] = hex.EncodeToString([]byte{x})
	}
	return strings.Join(parts, ":")
}
