package node

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pipebots/pipelink/internal/config"
	"github.com/pipebots/pipelink/internal/protocol"
	"github.com/pipebots/pipelink/internal/radio"
	"github.com/pipebots/pipelink/internal/radio/loopback"
	"github.com/pipebots/pipelink/internal/wlan"
)

type stubScanner struct {
	m     *wlan.Measurement
	found bool
	err   error
	calls int
}

func (s *stubScanner) Scan(_ context.Context, _ string) (*wlan.Measurement, bool, error) {
	s.calls++
	return s.m, s.found, s.err
}

func nodeConfig() *config.NodeConfig {
	return &config.NodeConfig{
		NodeID:          "0007",
		WLANSSID:        "survey-ap",
		WLANInterface:   "wlan0",
		MeasIntervalSec: 60,
		MeasNA:          0x00,
	}
}

func TestCycleTransmitsPresentMeasurement(t *testing.T) {
	link := loopback.New(4, radio.LinkStats{RSSI: -99, SNR: 11})
	defer link.Close()

	scanner := &stubScanner{
		m:     &wlan.Measurement{RSSI: -63, Channel: 6, BSSID: [6]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}},
		found: true,
	}

	r, err := New(nodeConfig(), scanner, link)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := r.Cycle(context.Background()); err != nil {
		t.Fatalf("Cycle() error = %v", err)
	}

	frame, err := link.Receive(context.Background())
	if err != nil {
		t.Fatalf("Receive() error = %v", err)
	}

	rec, err := protocol.Decode(frame.Data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if rec.NodeID != 0x0007 {
		t.Errorf("NodeID = %#04x, want 0x0007", rec.NodeID)
	}
	if rec.MsgCnt != 1 {
		t.Errorf("MsgCnt = %d, want 1 (first cycle)", rec.MsgCnt)
	}
	if rec.Shape != protocol.ShapePresent {
		t.Errorf("Shape = %v, want present", rec.Shape)
	}
	if rec.RSSI != -63 || rec.Channel != 6 {
		t.Errorf("measurement = rssi %d channel %d, want -63/6", rec.RSSI, rec.Channel)
	}
	if rec.BSSID != [6]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF} {
		t.Errorf("BSSID = % X", rec.BSSID)
	}
}

func TestCycleTransmitsAbsentSentinel(t *testing.T) {
	link := loopback.New(4, radio.LinkStats{})
	defer link.Close()

	cfg := nodeConfig()
	cfg.MeasNA = 0x7F

	r, err := New(cfg, &stubScanner{found: false}, link)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := r.Cycle(context.Background()); err != nil {
		t.Fatalf("Cycle() error = %v", err)
	}

	frame, err := link.Receive(context.Background())
	if err != nil {
		t.Fatalf("Receive() error = %v", err)
	}

	rec, err := protocol.Decode(frame.Data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if rec.Shape != protocol.ShapeAbsent {
		t.Fatalf("Shape = %v, want absent", rec.Shape)
	}
	if rec.Sentinel != [3]byte{0x7F, 0x7F, 0x7F} {
		t.Errorf("Sentinel = % X, want 7F 7F 7F", rec.Sentinel)
	}
}

func TestCycleCounterAdvancesOncePerCycle(t *testing.T) {
	link := loopback.New(8, radio.LinkStats{})
	defer link.Close()

	r, err := New(nodeConfig(), &stubScanner{found: false}, link)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := r.Cycle(context.Background()); err != nil {
			t.Fatalf("Cycle() #%d error = %v", i, err)
		}
	}

	for want := uint32(1); want <= 3; want++ {
		frame, err := link.Receive(context.Background())
		if err != nil {
			t.Fatalf("Receive() error = %v", err)
		}
		rec, err := protocol.Decode(frame.Data)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if rec.MsgCnt != want {
			t.Errorf("MsgCnt = %d, want %d", rec.MsgCnt, want)
		}
	}

	if r.MsgCnt() != 4 {
		t.Errorf("MsgCnt() = %d, want 4", r.MsgCnt())
	}
}

func TestCycleScanErrorDoesNotAdvanceCounter(t *testing.T) {
	link := loopback.New(1, radio.LinkStats{})
	defer link.Close()

	scanner := &stubScanner{err: errors.New("scan failed")}

	r, err := New(nodeConfig(), scanner, link)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := r.Cycle(context.Background()); err == nil {
		t.Fatal("Cycle() = nil error, want scan error")
	}
	if r.MsgCnt() != 1 {
		t.Errorf("MsgCnt() = %d, want 1 (no frame sent)", r.MsgCnt())
	}
}

func TestNewRejectsBadNodeID(t *testing.T) {
	cfg := nodeConfig()
	cfg.NodeID = "07" // one byte, not two

	if _, err := New(cfg, &stubScanner{}, loopback.New(1, radio.LinkStats{})); err == nil {
		t.Fatal("New() = nil error, want node id error")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	link := loopback.New(16, radio.LinkStats{})
	defer link.Close()

	cfg := nodeConfig()
	cfg.MeasIntervalSec = 3600 // only the immediate first cycle fires

	r, err := New(cfg, &stubScanner{found: false}, link)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	// Wait for the first frame, then cancel.
	if _, err := link.Receive(context.Background()); err != nil {
		t.Fatalf("Receive() error = %v", err)
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
