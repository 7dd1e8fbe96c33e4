// Package rylr drives a REYAX RYLR896 LoRa modem over its UART AT command
// interface. Frames are shipped as ASCII hex inside AT+SEND / +RCV
// exchanges, which keeps the line protocol free of framing ambiguity.
package rylr

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goburrow/serial"
	"go.uber.org/zap"

	"github.com/pipebots/pipelink/internal/config"
	"github.com/pipebots/pipelink/internal/logging"
	"github.com/pipebots/pipelink/internal/radio"
)

const (
	// readChunkSize is the UART read granularity.
	readChunkSize = 256

	// portTimeout is the blocking read timeout on the serial port. Reads
	// loop on this timeout so the context can be checked in between; it is
	// not a frame timeout.
	portTimeout = 500 * time.Millisecond
)

// Modem is an open RYLR896 device. It implements radio.Transmitter and
// radio.Receiver. The modem is half-duplex; a node only ever transmits and
// a gateway only ever receives, so the single command lock is never
// contended in practice.
type Modem struct {
	port serial.Port
	dest uint16 // link destination for Send; 0 broadcasts

	mu      sync.Mutex
	buf     []byte         // unconsumed UART bytes
	pending []*radio.Frame // +RCV lines that arrived during a command exchange
}

// Open opens the modem on the configured UART and programs its RF
// parameters. The returned modem is ready to Send and Receive.
func Open(ctx context.Context, cfg config.RadioConfig, dest uint16) (*Modem, error) {
	port, err := serial.Open(&serial.Config{
		Address:  cfg.Device,
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  portTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open modem port %s: %w", cfg.Device, err)
	}

	m := &Modem{port: port, dest: dest}

	bw, err := bandwidthIndex(cfg.BandwidthKHz)
	if err != nil {
		_ = port.Close()
		return nil, err
	}
	cr, err := codingRateIndex(cfg.CodingRate)
	if err != nil {
		_ = port.Close()
		return nil, err
	}

	setup := []string{
		"AT",
		fmt.Sprintf("AT+ADDRESS=%d", cfg.Address),
		fmt.Sprintf("AT+NETWORKID=%d", cfg.NetworkID),
		fmt.Sprintf("AT+BAND=%d", cfg.Frequency),
		fmt.Sprintf("AT+PARAMETER=%d,%d,%d,%d", cfg.SpreadingFactor, bw, cr, programmedPreamble),
		fmt.Sprintf("AT+CRFOP=%d", cfg.TxPower),
	}
	for _, cmd := range setup {
		if err := m.command(ctx, cmd); err != nil {
			_ = port.Close()
			return nil, fmt.Errorf("modem setup %q failed: %w", cmd, err)
		}
	}

	logging.Info("LoRa modem configured",
		zap.String("device", cfg.Device),
		zap.Uint32("frequency", cfg.Frequency),
		zap.Int("spreading_factor", cfg.SpreadingFactor),
		zap.Int("bandwidth_khz", cfg.BandwidthKHz),
	)

	return m, nil
}

// Send transmits one frame. It blocks until the modem acknowledges the
// AT+SEND or the context is done.
func (m *Modem) Send(ctx context.Context, frame []byte) error {
	data := strings.ToUpper(hex.EncodeToString(frame))
	cmd := fmt.Sprintf("AT+SEND=%d,%d,%s", m.dest, len(data), data)

	return m.command(ctx, cmd)
}

// Receive blocks until the modem reports a received frame.
func (m *Modem) Receive(ctx context.Context) (*radio.Frame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.pending) > 0 {
		frame := m.pending[0]
		m.pending = m.pending[1:]
		return frame, nil
	}

	for {
		line, err := m.readLine(ctx)
		if err != nil {
			return nil, err
		}

		if !strings.HasPrefix(line, recvPrefix) {
			// Unsolicited module chatter (+OK, +READY after reset).
			logging.Debug("Modem line ignored", zap.String("line", line))
			continue
		}

		frame, _, err := parseRecv(line)
		if err != nil {
			logging.Warn("Unparseable +RCV line", zap.String("line", line), zap.Error(err))
			continue
		}

		return frame, nil
	}
}

// Close releases the UART.
func (m *Modem) Close() error {
	return m.port.Close()
}

// command writes one AT command and waits for +OK. +RCV lines that arrive
// in the middle of the exchange are queued for Receive rather than lost.
func (m *Modem) command(ctx context.Context, cmd string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.port.Write([]byte(cmd + "\r\n")); err != nil {
		return fmt.Errorf("modem write failed: %w", err)
	}

	for {
		line, err := m.readLine(ctx)
		if err != nil {
			return err
		}

		switch {
		case line == responseOK:
			return nil
		case strings.HasPrefix(line, errPrefix):
			return fmt.Errorf("modem error %s to %q", strings.TrimPrefix(line, errPrefix), cmd)
		case strings.HasPrefix(line, recvPrefix):
			if frame, _, err := parseRecv(line); err == nil {
				m.pending = append(m.pending, frame)
			}
		default:
			logging.Debug("Modem line ignored", zap.String("line", line))
		}
	}
}

// readLine returns the next CRLF-terminated line from the modem, looping on
// the port's read timeout so ctx cancellation is honoured. Callers hold mu.
func (m *Modem) readLine(ctx context.Context) (string, error) {
	for {
		if i := bytes.IndexByte(m.buf, '\n'); i >= 0 {
			line := strings.TrimRight(string(m.buf[:i]), "\r")
			m.buf = m.buf[i+1:]
			if line == "" {
				continue
			}
			return line, nil
		}

		if err := ctx.Err(); err != nil {
			return "", err
		}

		chunk := make([]byte, readChunkSize)
		n, err := m.port.Read(chunk)
		if n > 0 {
			m.buf = append(m.buf, chunk[:n]...)
		}
		if err != nil && err != serial.ErrTimeout {
			return "", fmt.Errorf("modem read failed: %w", err)
		}
	}
}
