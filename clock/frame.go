package clock

import (
	"sync"
	"sync/atomic"
)

// Handle identifies a scheduled callback. The zero Handle is never issued,
// so it can stand for "nothing scheduled".
type Handle uint64

// Frame queues callbacks until the next refresh.
//
// Frame is safe for concurrent use. Callbacks run on the goroutine that calls
// Fire, one at a time, in the order they were scheduled.
type Frame struct {
	mu      sync.Mutex
	next    Handle
	order   []Handle
	pending map[Handle]func()

	fired     atomic.Uint64
	refreshes atomic.Uint64
}

// NewFrame creates an empty Frame.
func NewFrame() *Frame {
	return &Frame{
		pending: make(map[Handle]func()),
	}
}

// Schedule registers fn to run on the next Fire.
func (f *Frame) Schedule(fn func()) Handle {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.next++
	h := f.next
	f.pending[h] = fn
	f.order = append(f.order, h)
	return h
}

// Cancel removes a scheduled callback. Cancelling the zero Handle, an
// already-run callback or an already-cancelled one is a no-op.
func (f *Frame) Cancel(h Handle) {
	if h == 0 {
		return
	}
	f.mu.Lock()
	delete(f.pending, h)
	f.mu.Unlock()
}

// Fire runs every callback that was scheduled before the call and has not
// been cancelled, and returns how many ran. A callback cancelled by an
// earlier callback of the same refresh does not run.
func (f *Frame) Fire() int {
	f.mu.Lock()
	batch := f.order
	f.order = nil
	f.mu.Unlock()

	n := 0
	for _, h := range batch {
		f.mu.Lock()
		fn, ok := f.pending[h]
		delete(f.pending, h)
		f.mu.Unlock()

		if !ok {
			continue
		}
		fn()
		n++
		f.fired.Add(1)
	}
	f.refreshes.Add(1)
	return n
}

// Pending returns the number of callbacks waiting for the next Fire.
func (f *Frame) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// Fired returns the total number of callbacks run so far.
func (f *Frame) Fired() uint64 {
	return f.fired.Load()
}

// Refreshes returns the number of Fire calls so far.
func (f *Frame) Refreshes() uint64 {
	return f.refreshes.Load()
}
