package pixy2

import (
	"context"
	"fmt"

	"github.com/sergev/pixy/link"
)

// Engine carries the framed request/response protocol over a bus.
// It owns the bus exclusively; one exchange is in flight at a time.
type Engine struct {
	bus  link.Bus
	conf options
}

// NewEngine creates a protocol engine on the given bus.
func NewEngine(bus link.Bus, opts ...Option) *Engine {
	conf := defaultOptions()
	for _, opt := range opts {
		opt(&conf)
	}
	return &Engine{bus: bus, conf: conf}
}

// Send writes payload in consecutive chunks of at most the chunk size,
// one bus write per chunk, and returns the number of bytes sent.
// Each write is all-or-error, so on failure the count covers
// the chunks that went out before it.
func (e *Engine) Send(payload []byte) (int, error) {
	sent := 0
	for sent < len(payload) {
		end := min(sent+e.conf.maxChunk, len(payload))
		if err := e.bus.WriteBytes(e.conf.addr, payload[sent:end]); err != nil {
			return sent, fmt.Errorf("failed to send bytes %d-%d: %w", sent, end, err)
		}
		sent = end
	}
	return sent, nil
}

// Receive reads exactly n bytes, asking the bus for the remaining count on
// every read. When cs is not nil it is reset and then updated with every
// received byte. The loop ends early when ctx is done or when the bus
// returns nothing too many times in a row.
func (e *Engine) Receive(ctx context.Context, n int, cs *Checksum) ([]byte, error) {
	if cs != nil {
		cs.Reset()
	}
	buf := make([]byte, 0, n)
	empty := 0
	for len(buf) < n {
		if err := ctx.Err(); err != nil {
			return buf, err
		}
		remaining := n - len(buf)
		data, err := e.bus.ReadBytes(e.conf.addr, remaining)
		if err != nil {
			return buf, fmt.Errorf("failed to receive %d bytes: %w", remaining, err)
		}
		if len(data) == 0 {
			empty++
			if empty >= e.conf.maxEmptyReads {
				return buf, fmt.Errorf("received %d of %d bytes: %w", len(buf), n, ErrNoData)
			}
			continue
		}
		empty = 0
		if len(data) > remaining {
			data = data[:remaining]
		}
		if cs != nil {
			cs.Add(data)
		}
		buf = append(buf, data...)
	}
	return buf, nil
}

// Close releases the bus.
func (e *Engine) Close() error {
	return e.bus.Close()
}
