package node

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pipebots/pipelink/internal/config"
	"github.com/pipebots/pipelink/internal/logging"
	"github.com/pipebots/pipelink/internal/protocol"
	"github.com/pipebots/pipelink/internal/radio"
	"github.com/pipebots/pipelink/internal/wlan"
)

// Runner drives one node's measure-encode-transmit loop.
type Runner struct {
	ssid     string
	interval time.Duration
	nodeID   uint16
	policy   protocol.Policy
	scanner  wlan.Scanner
	tx       radio.Transmitter
	msgCnt   uint32
}

// New builds a Runner from the node configuration. The scanner and
// transmitter are injected so the loop can run against a loopback link
// in tests; the caller owns both and closes the transmitter.
func New(cfg *config.NodeConfig, scanner wlan.Scanner, tx radio.Transmitter) (*Runner, error) {
	nodeID, err := cfg.NodeIDValue()
	if err != nil {
		return nil, err
	}

	return &Runner{
		ssid:     cfg.WLANSSID,
		interval: time.Duration(cfg.MeasIntervalSec) * time.Second,
		nodeID:   nodeID,
		policy:   protocol.Policy{Sentinel: cfg.MeasNA},
		scanner:  scanner,
		tx:       tx,
		msgCnt:   1,
	}, nil
}

// Run executes measurement cycles until the context is cancelled. The
// first cycle runs immediately; subsequent cycles follow the configured
// interval. Cycle failures are logged and do not stop the loop.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if err := r.Cycle(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logging.Error("Measurement cycle failed",
				zap.Uint32("msg_cnt", r.msgCnt),
				zap.Error(err),
			)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Cycle performs a single measurement cycle: scan for the target SSID,
// build the payload, encode a frame and transmit it. The message counter
// advances exactly once per call, whether or not the network was seen,
// so receivers can account for every cycle.
func (r *Runner) Cycle(ctx context.Context) error {
	payload, err := r.measure(ctx)
	if err != nil {
		return err
	}

	frame, err := protocol.Encode(r.nodeID, r.msgCnt, payload)
	if err != nil {
		return fmt.Errorf("encoding frame %d: %w", r.msgCnt, err)
	}

	logging.LogFrame("tx", frame)

	if err := r.tx.Send(ctx, frame); err != nil {
		return fmt.Errorf("transmitting frame %d: %w", r.msgCnt, err)
	}

	r.msgCnt++ // wraps at 32 bits; receivers treat the wrap as a gap of 1
	return nil
}

// MsgCnt reports the counter the next transmitted frame will carry.
func (r *Runner) MsgCnt() uint32 {
	return r.msgCnt
}

func (r *Runner) measure(ctx context.Context) ([]byte, error) {
	m, found, err := r.scanner.Scan(ctx, r.ssid)
	if err != nil {
		return nil, fmt.Errorf("scanning for %q: %w", r.ssid, err)
	}

	if !found {
		logging.Debug("Target network not observed",
			zap.String("ssid", r.ssid),
			zap.Uint32("msg_cnt", r.msgCnt),
		)
		return r.policy.Absent(), nil
	}

	logging.Debug("Target network observed",
		zap.String("ssid", r.ssid),
		zap.String("measurement", m.String()),
		zap.Uint32("msg_cnt", r.msgCnt),
	)
	return r.policy.Present(m.RSSI, m.Channel, m.BSSID), nil
}
