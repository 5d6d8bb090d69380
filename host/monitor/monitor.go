// Package monitor decodes the robot's telemetry stream on the host.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"brickgo/host/serial"
	"brickgo/protocol"
)

// idlePoll is how long Run waits after a read timeout before trying again
const idlePoll = 10 * time.Millisecond

// Sample is one decoded telemetry report
type Sample struct {
	Telemetry protocol.Telemetry
	Received  time.Time
}

// Stats counts what the monitor has seen so far
type Stats struct {
	Frames  int // Frames decoded
	Lost    int // Frames missing according to sequence numbers
	Dropped int // Frames rejected by the reader
	Invalid int // Frames that passed framing but not decoding
}

// Monitor reads telemetry frames from a byte stream and publishes them.
type Monitor struct {
	src       io.ReadCloser
	reader    *protocol.FrameReader
	stopOnEOF bool

	mu      sync.Mutex
	running bool
	last    *protocol.Telemetry
	stats   Stats

	sampleCh chan Sample
	logCh    chan string
}

// New wraps src. With stopOnEOF set, src is a replay: Run returns once src
// reports io.EOF, and every sample is delivered, Run waiting for the
// consumer instead of replacing unread samples. Otherwise io.EOF is treated
// as a read timeout, which is what a serial port with a read deadline
// produces, and only the newest sample is kept.
func New(src io.ReadCloser, stopOnEOF bool) *Monitor {
	return &Monitor{
		src:       src,
		reader:    protocol.NewFrameReader(src),
		stopOnEOF: stopOnEOF,
		sampleCh:  make(chan Sample, 1),
		logCh:     make(chan string, 10),
	}
}

// Open opens the serial device described by cfg and monitors it
func Open(cfg *serial.Config) (*Monitor, error) {
	port, err := serial.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := port.Flush(); err != nil {
		port.Close()
		return nil, fmt.Errorf("flush %s: %w", cfg.Device, err)
	}
	return New(port, false), nil
}

// Close closes the underlying stream
func (m *Monitor) Close() error {
	m.mu.Lock()
	m.running = false
	m.mu.Unlock()
	return m.src.Close()
}

// Samples returns a channel that receives decoded samples. On a live source
// samples the consumer is too slow for are replaced by newer ones.
func (m *Monitor) Samples() <-chan Sample {
	return m.sampleCh
}

// Logs returns a channel that receives log messages
func (m *Monitor) Logs() <-chan string {
	return m.logCh
}

// Stats returns a snapshot of the counters
func (m *Monitor) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.stats
	s.Dropped = m.reader.Dropped()
	return s
}

// Last returns the most recent telemetry, if any
func (m *Monitor) Last() (protocol.Telemetry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.last == nil {
		return protocol.Telemetry{}, false
	}
	return *m.last, true
}

func (m *Monitor) log(format string, args ...any) {
	msg := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	select {
	case m.logCh <- msg:
	default:
		// Drop if channel full
	}
}

// Run reads frames until ctx is done, the stream fails, or (with stopOnEOF)
// the stream ends.
func (m *Monitor) Run(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return fmt.Errorf("already running")
	}
	m.running = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.running = false
		m.mu.Unlock()
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		frame, err := m.reader.Next()
		if errors.Is(err, io.EOF) {
			if m.stopOnEOF {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(idlePoll):
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("read telemetry: %w", err)
		}

		if err := m.handle(ctx, frame); err != nil {
			return err
		}
	}
}

// handle decodes one frame and publishes it. It only fails when ctx ends
// while a replay is waiting for its consumer.
func (m *Monitor) handle(ctx context.Context, frame []byte) error {
	t, err := protocol.DecodeTelemetry(frame)
	if err != nil {
		m.mu.Lock()
		m.stats.Invalid++
		m.mu.Unlock()
		m.log("Decode error: %v", err)
		return nil
	}

	m.mu.Lock()
	m.stats.Frames++
	gap := 0
	if m.last != nil {
		gap = int((t.Seq-m.last.Seq-1)&protocol.MessageSeqMask)
		m.stats.Lost += gap
	}
	wasTripped := m.last != nil && m.last.Tripped()
	m.last = &t
	m.mu.Unlock()

	if gap > 0 {
		m.log("Lost %d frame(s) before seq %d", gap, t.Seq)
	}
	if t.Tripped() && !wasTripped {
		m.log("Battery cutoff tripped at %d mV", t.Millivolts)
	}

	s := Sample{Telemetry: t, Received: time.Now()}
	if m.stopOnEOF {
		select {
		case m.sampleCh <- s:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	m.sendSample(s)
	return nil
}

func (m *Monitor) sendSample(s Sample) {
	select {
	case m.sampleCh <- s:
	default:
		// Drop old sample if channel full, replace with new
		select {
		case <-m.sampleCh:
		default:
		}
		m.sampleCh <- s
	}
}
