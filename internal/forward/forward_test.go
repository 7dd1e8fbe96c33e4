package forward

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pipebots/pipelink/internal/protocol"
	"github.com/pipebots/pipelink/internal/radio"
)

var (
	fixedNow = time.Date(2025, 6, 1, 12, 0, 5, 0, time.UTC)
	fixedRx  = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
)

func presentRecord() *protocol.Record {
	return &protocol.Record{
		NodeID:  0x0007,
		MsgCnt:  42,
		Shape:   protocol.ShapePresent,
		RSSI:    -63,
		Channel: 6,
		BSSID:   [6]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF},
	}
}

func TestFormatPresentRecord(t *testing.T) {
	f := Formatter{GatewayID: "gw01", Now: func() time.Time { return fixedNow }}

	got := f.Format(presentRecord(), radio.LinkStats{RSSI: -99, SNR: 11}, fixedRx)
	want := "gateway_id,gw01," +
		"gateway_time,2025-06-01T12:00:05Z," +
		"lora_rx_time,2025-06-01T12:00:00Z," +
		"lora_rssi,-99,lora_snr,11," +
		"wlan_rssi,-63,wlan_channel,6,wlan_bssid,aa:bb:cc:dd:ee:ff," +
		"node_id,0007,message_cnt,42\n"

	if got != want {
		t.Errorf("Format() =\n%q\nwant\n%q", got, want)
	}
}

func TestFormatAbsentRecordUsesNA(t *testing.T) {
	f := Formatter{GatewayID: "gw01", Now: func() time.Time { return fixedNow }}

	rec := &protocol.Record{
		NodeID:   0x00FF,
		MsgCnt:   1,
		Shape:    protocol.ShapeAbsent,
		Sentinel: [3]byte{0x00, 0x00, 0x00},
	}

	got := f.Format(rec, radio.LinkStats{RSSI: -120, SNR: -3}, fixedRx)

	if !strings.Contains(got, "wlan_rssi,NA,wlan_channel,NA,wlan_bssid,NA,") {
		t.Errorf("Format() = %q, want NA wlan fields", got)
	}
	if !strings.Contains(got, "node_id,00ff,") {
		t.Errorf("Format() = %q, want node_id 00ff", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Errorf("Format() = %q, want trailing newline", got)
	}
}

func TestForwarderWritesOneLinePerRecord(t *testing.T) {
	var buf bytes.Buffer
	fw := NewForwarder(&buf, Formatter{GatewayID: "gw01", Now: func() time.Time { return fixedNow }})

	for cnt := uint32(1); cnt <= 3; cnt++ {
		rec := presentRecord()
		rec.MsgCnt = cnt
		if err := fw.Consume(rec, radio.LinkStats{RSSI: -99, SNR: 11}, fixedRx); err != nil {
			t.Fatalf("Consume() error = %v", err)
		}
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	for i, line := range lines {
		if !strings.HasPrefix(line, "gateway_id,gw01,") {
			t.Errorf("line %d = %q, want gateway_id prefix", i, line)
		}
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("port gone") }

func TestForwarderPropagatesWriteError(t *testing.T) {
	fw := NewForwarder(failWriter{}, Formatter{GatewayID: "gw01"})

	err := fw.Consume(presentRecord(), radio.LinkStats{}, fixedRx)
	if err == nil {
		t.Fatal("Consume() = nil error, want write error")
	}
	if !strings.Contains(err.Error(), "port gone") {
		t.Errorf("Consume() error = %v, want wrapped write error", err)
	}
}
