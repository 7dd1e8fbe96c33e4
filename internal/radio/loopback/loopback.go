// Package loopback provides an in-memory radio link for tests: frames sent
// on one end come out the other, stamped with fixed link stats.
package loopback

import (
	"context"
	"sync"

	"github.com/pipebots/pipelink/internal/radio"
)

// Link is an in-memory radio channel. It implements both radio.Transmitter
// and radio.Receiver and is safe for concurrent use.
type Link struct {
	frames chan []byte
	stats  radio.LinkStats

	closeOnce sync.Once
	closed    chan struct{}
}

// New creates a link that buffers up to depth in-flight frames and reports
// stats for every received frame.
func New(depth int, stats radio.LinkStats) *Link {
	return &Link{
		frames: make(chan []byte, depth),
		stats:  stats,
		closed: make(chan struct{}),
	}
}

// Send queues a copy of frame for the receiving side.
func (l *Link) Send(ctx context.Context, frame []byte) error {
	buf := make([]byte, len(frame))
	copy(buf, frame)

	select {
	case l.frames <- buf:
		return nil
	case <-l.closed:
		return radio.ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Receive blocks for the next queued frame.
func (l *Link) Receive(ctx context.Context) (*radio.Frame, error) {
	select {
	case data := <-l.frames:
		return &radio.Frame{Data: data, Stats: l.stats}, nil
	case <-l.closed:
		return nil, radio.ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close shuts the link down. Pending Sends and Receives return ErrClosed.
func (l *Link) Close() error {
	l.closeOnce.Do(func() { close(l.closed) })
	return nil
}
