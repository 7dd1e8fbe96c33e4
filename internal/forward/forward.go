// Package forward turns decoded records into log lines and writes them to
// the logging host over the gateway's UART.
//
// Each record becomes one newline-terminated line of alternating
// header,value pairs so the host can ingest it without a schema:
//
//	gateway_id,gw01,gateway_time,...,lora_rx_time,...,lora_rssi,-99,
//	lora_snr,11,wlan_rssi,-63,wlan_channel,6,wlan_bssid,aa:bb:cc:dd:ee:ff,
//	node_id,0007,message_cnt,42
//
// When the node reported no sighting of the target network, the three
// wlan fields carry the literal value NA.
package forward

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/goburrow/serial"

	"github.com/pipebots/pipelink/internal/config"
	"github.com/pipebots/pipelink/internal/gateway"
	"github.com/pipebots/pipelink/internal/protocol"
	"github.com/pipebots/pipelink/internal/radio"
)

// Formatter renders records as log lines.
type Formatter struct {
	// GatewayID is stamped into every line.
	GatewayID string

	// Now supplies the gateway_time field; defaults to time.Now.
	Now func() time.Time
}

// Format renders one record as a newline-terminated log line.
func (f *Formatter) Format(rec *protocol.Record, stats radio.LinkStats, rxTime time.Time) string {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}

	wlanRSSI, wlanChannel, wlanBSSID := "NA", "NA", "NA"
	if rec.Shape == protocol.ShapePresent {
		wlanRSSI = fmt.Sprintf("%d", rec.RSSI)
		wlanChannel = fmt.Sprintf("%d", rec.Channel)
		wlanBSSID = formatBSSID(rec.BSSID)
	}

	fields := []string{
		"gateway_id", f.GatewayID,
		"gateway_time", now().UTC().Format(time.RFC3339),
		"lora_rx_time", rxTime.UTC().Format(time.RFC3339),
		"lora_rssi", fmt.Sprintf("%d", stats.RSSI),
		"lora_snr", fmt.Sprintf("%d", stats.SNR),
		"wlan_rssi", wlanRSSI,
		"wlan_channel", wlanChannel,
		"wlan_bssid", wlanBSSID,
		"node_id", fmt.Sprintf("%04x", rec.NodeID),
		"message_cnt", fmt.Sprintf("%d", rec.MsgCnt),
	}

	return strings.Join(fields, ",") + "\n"
}

// Forwarder writes formatted records to a single writer. It implements
// gateway.Sink and serialises writes so lines never interleave.
type Forwarder struct {
	fmt Formatter

	mu sync.Mutex
	w  io.Writer
}

var _ gateway.Sink = (*Forwarder)(nil)

// NewForwarder wraps w with the given formatter.
func NewForwarder(w io.Writer, f Formatter) *Forwarder {
	return &Forwarder{fmt: f, w: w}
}

// Consume formats the record and writes it to the underlying writer.
func (fw *Forwarder) Consume(rec *protocol.Record, stats radio.LinkStats, rxTime time.Time) error {
	line := fw.fmt.Format(rec, stats, rxTime)

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if _, err := io.WriteString(fw.w, line); err != nil {
		return fmt.Errorf("writing log line: %w", err)
	}
	return nil
}

// OpenSerial opens the UART to the logging host.
func OpenSerial(cfg config.SerialConfig) (io.ReadWriteCloser, error) {
	port, err := serial.Open(&serial.Config{
		Address:  cfg.Device,
		BaudRate: cfg.BaudRate,
		DataBits: cfg.DataBits,
		StopBits: cfg.StopBits,
		Parity:   cfg.Parity,
		Timeout:  time.Duration(cfg.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("opening serial device %s: %w", cfg.Device, err)
	}
	return port, nil
}

func formatBSSID(b [6]byte) string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", b[0], b[1], b[2], b[3], b[4], b[5])
}
