package pixy2

import (
	"context"
	"time"

	"github.com/sergev/pixy/link"
)

// MaxChunk is the largest number of bytes sent in one bus write
const MaxChunk = 16

// options holds the engine and client settings
type options struct {
	addr          byte
	maxChunk      int
	maxEmptyReads int
	syncLimit     int
	timeout       time.Duration
	retry         RetryPolicy
}

func defaultOptions() options {
	return options{
		addr:          link.DefaultAddress,
		maxChunk:      MaxChunk,
		maxEmptyReads: 10,
		syncLimit:     20,
		timeout:       time.Second,
		retry:         DefaultRetryPolicy(),
	}
}

// Option is a functional option for configuring the Engine and Client.
type Option func(*options)

// WithAddress sets the 7-bit bus address of the camera.
func WithAddress(addr byte) Option {
	return func(c *options) {
		c.addr = addr
	}
}

// WithChunkSize sets the maximum number of bytes per bus write.
// Values outside 1..MaxChunk are ignored.
func WithChunkSize(size int) Option {
	return func(c *options) {
		if size > 0 && size <= MaxChunk {
			c.maxChunk = size
		}
	}
}

// WithMaxEmptyReads sets how many consecutive empty reads end a receive.
func WithMaxEmptyReads(n int) Option {
	return func(c *options) {
		if n > 0 {
			c.maxEmptyReads = n
		}
	}
}

// WithTimeout bounds each exchange made by methods that take no context.
func WithTimeout(timeout time.Duration) Option {
	return func(c *options) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithRetryPolicy sets the retry policy used while the camera is changing programs.
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(c *options) {
		c.retry = policy
	}
}

// RetryPolicy bounds the retry loop of requests that the camera may answer
// with "program changing".
type RetryPolicy struct {
	// Budget is the total time allowed, measured from the first attempt
	Budget time.Duration

	// Delay is the pause between attempts
	Delay time.Duration

	// MaxAttempts limits the number of attempts; zero means no limit besides Budget
	MaxAttempts int

	// Now and Sleep default to the wall clock; tests replace them
	Now   func() time.Time
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy returns a 500ms budget with 500µs between attempts.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Budget: 500 * time.Millisecond,
		Delay:  500 * time.Microsecond,
	}
}

func (p RetryPolicy) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p RetryPolicy) sleep(ctx context.Context) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, p.Delay)
	}
	if p.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(p.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// exhausted reports whether another attempt is not allowed.
func (p RetryPolicy) exhausted(start time.Time, attempts int) bool {
	if p.MaxAttempts > 0 && attempts >= p.MaxAttempts {
		return true
	}
	return p.now().Sub(start) > p.Budget
}
