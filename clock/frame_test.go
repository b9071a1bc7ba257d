package clock

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFrameRunsInScheduleOrder(t *testing.T) {
	f := NewFrame()
	var got []int
	for i := 0; i < 3; i++ {
		f.Schedule(func() { got = append(got, i) })
	}

	if n := f.Fire(); n != 3 {
		t.Fatalf("Fire() = %d, want 3", n)
	}
	for i, v := range got {
		if v != i {
			t.Errorf("callback %d ran as %d", i, v)
		}
	}
	if f.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", f.Pending())
	}
}

func TestFrameHandlesAreUniqueAndNonZero(t *testing.T) {
	f := NewFrame()
	seen := make(map[Handle]bool)
	for i := 0; i < 10; i++ {
		h := f.Schedule(func() {})
		if h == 0 {
			t.Fatal("Schedule returned the zero Handle")
		}
		if seen[h] {
			t.Fatalf("Schedule returned duplicate handle %d", h)
		}
		seen[h] = true
	}
}

func TestFrameRescheduleWaitsForNextRefresh(t *testing.T) {
	f := NewFrame()
	calls := 0
	var loop func()
	loop = func() {
		calls++
		f.Schedule(loop)
	}
	f.Schedule(loop)

	for i := 1; i <= 5; i++ {
		f.Fire()
		if calls != i {
			t.Fatalf("after %d refreshes calls = %d, want %d", i, calls, i)
		}
	}
	if f.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", f.Pending())
	}
}

func TestFrameCancel(t *testing.T) {
	f := NewFrame()
	ran := false
	h := f.Schedule(func() { ran = true })
	f.Cancel(h)

	if n := f.Fire(); n != 0 {
		t.Errorf("Fire() = %d, want 0", n)
	}
	if ran {
		t.Error("cancelled callback ran")
	}

	// Cancelling again, or cancelling nothing, is harmless.
	f.Cancel(h)
	f.Cancel(0)
}

func TestFrameCancelWithinSameRefresh(t *testing.T) {
	f := NewFrame()
	ran := false
	var second Handle
	f.Schedule(func() { f.Cancel(second) })
	second = f.Schedule(func() { ran = true })

	f.Fire()
	if ran {
		t.Error("callback cancelled earlier in the same refresh still ran")
	}
}

func TestFrameCounters(t *testing.T) {
	f := NewFrame()
	f.Schedule(func() {})
	f.Schedule(func() {})
	f.Fire()
	f.Fire()

	if got := f.Fired(); got != 2 {
		t.Errorf("Fired() = %d, want 2", got)
	}
	if got := f.Refreshes(); got != 2 {
		t.Errorf("Refreshes() = %d, want 2", got)
	}
}

func TestTickerRunFiresUntilCancelled(t *testing.T) {
	f := NewFrame()
	ticker := NewTicker(f, 1000)

	ctx, cancel := context.WithCancel(context.Background())
	refreshes := 0
	var loop func()
	loop = func() { f.Schedule(loop) }
	f.Schedule(loop)

	done := make(chan error, 1)
	go func() {
		done <- ticker.Run(ctx, func() {
			refreshes++
			if refreshes == 3 {
				cancel()
			}
		})
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if f.Fired() < 3 {
		t.Errorf("Fired() = %d, want at least 3", f.Fired())
	}
}

func TestNewTickerDefaultRate(t *testing.T) {
	ticker := NewTicker(NewFrame(), 0)
	want := time.Second / DefaultRefreshRate
	if got := ticker.Interval(); got < want-time.Microsecond || got > want+time.Microsecond {
		t.Errorf("Interval() = %v, want %v", got, want)
	}
}
