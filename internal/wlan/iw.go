package wlan

import (
	"context"
	"fmt"
	"net"
	"os/exec"
	"strconv"
	"strings"
)

// IWScanner runs iw(8) scans on a local wireless interface.
type IWScanner struct {
	// Interface is the wireless interface to scan on, e.g. "wlan0".
	Interface string
}

// Scan triggers a scan and looks for ssid in the results.
func (s *IWScanner) Scan(ctx context.Context, ssid string) (*Measurement, bool, error) {
	out, err := exec.CommandContext(ctx, "iw", "dev", s.Interface, "scan").Output()
	if err != nil {
		return nil, false, fmt.Errorf("iw scan on %s failed: %w", s.Interface, err)
	}
	m, found := parseScan(string(out), ssid)
	return m, found, nil
}

// parseScan extracts the first BSS advertising ssid from iw scan output.
//
// The output is a sequence of BSS blocks:
//
//	BSS aa:bb:cc:dd:ee:ff(on wlan0)
//	        signal: -63.00 dBm
//	        SSID: survey-ap
//	        DS Parameter set: channel 6
func parseScan(output, ssid string) (*Measurement, bool) {
	var (
		cur      Measurement
		haveBSS  bool
		haveRSSI bool
		haveChan bool
		matched  bool
	)

	flush := func() (*Measurement, bool) {
		if matched && haveBSS && haveRSSI && haveChan {
			m := cur
			return &m, true
		}
		return nil, false
	}

	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(line, "BSS ") {
			if m, ok := flush(); ok {
				return m, true
			}
			cur = Measurement{}
			haveBSS, haveRSSI, haveChan, matched = false, false, false, false

			addr := strings.Fields(strings.TrimPrefix(line, "BSS "))[0]
			// iw appends the interface in parentheses.
			if i := strings.IndexByte(addr, '('); i >= 0 {
				addr = addr[:i]
			}
			hw, err := net.ParseMAC(addr)
			if err == nil && len(hw) == 6 {
				copy(cur.BSSID[:], hw)
				haveBSS = true
			}
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "signal:"):
			val := strings.TrimSpace(strings.TrimPrefix(trimmed, "signal:"))
			val = strings.TrimSuffix(val, " dBm")
			if f, err := strconv.ParseFloat(val, 64); err == nil && f >= -128 && f <= 127 {
				cur.RSSI = int8(f)
				haveRSSI = true
			}

		case strings.HasPrefix(trimmed, "SSID:"):
			name := strings.TrimSpace(strings.TrimPrefix(trimmed, "SSID:"))
			matched = name == ssid

		case strings.HasPrefix(trimmed, "DS Parameter set: channel"):
			val := strings.TrimSpace(strings.TrimPrefix(trimmed, "DS Parameter set: channel"))
			if ch, err := strconv.ParseUint(val, 10, 8); err == nil {
				cur.Channel = uint8(ch)
				haveChan = true
			}
		}
	}

	return flush()
}
