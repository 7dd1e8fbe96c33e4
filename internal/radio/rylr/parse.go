package rylr

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/pipebots/pipelink/internal/radio"
)

const (
	responseOK = "+OK"
	errPrefix  = "+ERR="
	recvPrefix = "+RCV="

	// programmedPreamble is the LoRa preamble length programmed into
	// AT+PARAMETER. 7 is the modem's documented default for point-to-point
	// links on this network id range.
	programmedPreamble = 7
)

// bandwidthIndex maps a bandwidth in kHz to the modem's AT+PARAMETER index.
func bandwidthIndex(khz int) (int, error) {
	switch khz {
	case 125:
		return 7, nil
	case 250:
		return 8, nil
	default:
		return 0, fmt.Errorf("unsupported bandwidth %d kHz", khz)
	}
}

// codingRateIndex maps a "4/x" coding rate to the modem's index.
func codingRateIndex(rate string) (int, error) {
	switch rate {
	case "4/5":
		return 1, nil
	case "4/6":
		return 2, nil
	case "4/7":
		return 3, nil
	case "4/8":
		return 4, nil
	default:
		return 0, fmt.Errorf("unsupported coding rate %q", rate)
	}
}

// parseRecv parses a +RCV line into a frame and the sender's link address.
//
// Line format: +RCV=<address>,<length>,<data>,<rssi>,<snr>
// where <data> is the ASCII hex this driver transmits and <length> counts
// the characters of <data>.
func parseRecv(line string) (*radio.Frame, uint16, error) {
	body := strings.TrimPrefix(line, recvPrefix)
	if body == line {
		return nil, 0, fmt.Errorf("not a +RCV line: %q", line)
	}

	// The data field cannot contain commas (it is hex), so a plain split
	// is unambiguous.
	fields := strings.Split(body, ",")
	if len(fields) != 5 {
		return nil, 0, fmt.Errorf("+RCV line has %d fields, want 5", len(fields))
	}

	addr, err := strconv.ParseUint(fields[0], 10, 16)
	if err != nil {
		return nil, 0, fmt.Errorf("bad +RCV address %q: %w", fields[0], err)
	}

	length, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, 0, fmt.Errorf("bad +RCV length %q: %w", fields[1], err)
	}
	if length != len(fields[2]) {
		return nil, 0, fmt.Errorf("+RCV length field %d, data is %d chars", length, len(fields[2]))
	}

	data, err := hex.DecodeString(fields[2])
	if err != nil {
		return nil, 0, fmt.Errorf("bad +RCV data: %w", err)
	}

	rssi, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, 0, fmt.Errorf("bad +RCV rssi %q: %w", fields[3], err)
	}

	snr, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, 0, fmt.Errorf("bad +RCV snr %q: %w", fields[4], err)
	}

	frame := &radio.Frame{
		Data:  data,
		Stats: radio.LinkStats{RSSI: rssi, SNR: snr},
	}
	return frame, uint16(addr), nil
}
