package gateway

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pipebots/pipelink/internal/logging"
	"github.com/pipebots/pipelink/internal/protocol"
	"github.com/pipebots/pipelink/internal/radio"
)

// A Sink consumes decoded records together with the link stats of the
// frame that carried them and the gateway's receive timestamp.
type Sink interface {
	Consume(rec *protocol.Record, stats radio.LinkStats, rxTime time.Time) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(rec *protocol.Record, stats radio.LinkStats, rxTime time.Time) error

// Consume calls f.
func (f SinkFunc) Consume(rec *protocol.Record, stats radio.LinkStats, rxTime time.Time) error {
	return f(rec, stats, rxTime)
}

// Runner drives the gateway's receive-decode-forward loop.
type Runner struct {
	rx      radio.Receiver
	tracker *Tracker
	sinks   []Sink

	// now is swappable for tests.
	now func() time.Time
}

// New builds a Runner that feeds decoded records to sinks in order. The
// caller owns the receiver and closes it to unblock a running loop.
func New(rx radio.Receiver, sinks ...Sink) *Runner {
	return &Runner{
		rx:      rx,
		tracker: NewTracker(),
		sinks:   sinks,
		now:     time.Now,
	}
}

// Tracker exposes the runner's loss tracker for status reporting. It must
// only be read while the loop is stopped.
func (r *Runner) Tracker() *Tracker {
	return r.tracker
}

// Run receives frames until the context is cancelled or the receiver is
// closed. Malformed frames and failing sinks are logged and skipped.
func (r *Runner) Run(ctx context.Context) error {
	for {
		frame, err := r.rx.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		r.handle(frame)
	}
}

func (r *Runner) handle(frame *radio.Frame) {
	rxTime := r.now()

	logging.LogFrame("rx", frame.Data)

	rec, err := protocol.Decode(frame.Data)
	if err != nil {
		logging.LogReject(err, frame.Data)
		return
	}

	lost := r.tracker.Observe(rec.NodeID, rec.MsgCnt)
	if lost > 0 {
		logging.Warn("Frames lost",
			zap.Uint16("node_id", rec.NodeID),
			zap.Uint32("msg_cnt", rec.MsgCnt),
			zap.Uint64("lost", lost),
			zap.Uint64("lost_total", r.tracker.Lost(rec.NodeID)),
		)
	}

	logging.Debug("Record received",
		zap.Uint16("node_id", rec.NodeID),
		zap.Uint32("msg_cnt", rec.MsgCnt),
		zap.String("record", rec.String()),
		zap.String("link", frame.Stats.String()),
	)

	for _, sink := range r.sinks {
		if err := sink.Consume(rec, frame.Stats, rxTime); err != nil {
			logging.Error("Sink failed",
				zap.Uint16("node_id", rec.NodeID),
				zap.Uint32("msg_cnt", rec.MsgCnt),
				zap.Error(err),
			)
		}
	}
}
