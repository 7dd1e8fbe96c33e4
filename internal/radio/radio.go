package radio

import (
	"context"
	"errors"
	"fmt"
)

// ErrClosed is returned by Send and Receive after the driver is closed.
var ErrClosed = errors.New("radio: closed")

// LinkStats are the receiver's own link-quality figures for one frame,
// measured by the radio hardware on receipt. They describe the LoRa link
// itself, not the WLAN measurement the frame carries.
type LinkStats struct {
	RSSI int // dBm
	SNR  int // dB
}

// Frame is one raw frame pulled off the air together with its link stats.
type Frame struct {
	Data  []byte
	Stats LinkStats
}

// Transmitter sends raw frames over the radio link. Send blocks until the
// frame has been handed to the modem or the context is done.
type Transmitter interface {
	Send(ctx context.Context, frame []byte) error
	Close() error
}

// Receiver pulls raw frames off the radio link. Receive blocks until a
// frame arrives or the context is done; timeout policy belongs to the
// caller's context, not to the driver.
type Receiver interface {
	Receive(ctx context.Context) (*Frame, error)
	Close() error
}

// String returns a compact representation for logging.
func (s LinkStats) String() string {
	return fmt.Sprintf("rssi=%d dBm snr=%d dB", s.RSSI, s.SNR)
}
