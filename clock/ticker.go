package clock

import (
	"context"
	"time"
)

// DefaultRefreshRate is the refresh rate, in Hz, used when none is given.
const DefaultRefreshRate = 60

// Ticker fires a Frame at a fixed refresh rate.
type Ticker struct {
	frame    *Frame
	interval time.Duration
}

// NewTicker creates a Ticker that fires frame rate times per second.
// A non-positive rate selects DefaultRefreshRate.
func NewTicker(frame *Frame, rate float64) *Ticker {
	if rate <= 0 {
		rate = DefaultRefreshRate
	}
	return &Ticker{
		frame:    frame,
		interval: time.Duration(float64(time.Second) / rate),
	}
}

// Interval returns the time between refreshes.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Run fires the frame on every refresh until ctx is done, then returns
// ctx.Err(). After each Fire, onRefresh (if non-nil) is called on the same
// goroutine, which is where a host presents the finished frame.
func (t *Ticker) Run(ctx context.Context, onRefresh func()) error {
	tk := time.NewTicker(t.interval)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tk.C:
			t.frame.Fire()
			if onRefresh != nil {
				onRefresh()
			}
		}
	}
}
