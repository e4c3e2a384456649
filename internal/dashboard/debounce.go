package dashboard

import "context"

// Debouncer coalesces a burst of input events into one action. Every event
// bumps the generation; the caller schedules a timer carrying the new
// generation and, when it fires, acts only if the generation is still
// current. Stale timers are simply ignored, so no explicit timer
// cancellation is needed.
type Debouncer struct {
	gen int
}

// Bump registers a new input event and returns its generation.
func (d *Debouncer) Bump() int {
	d.gen++
	return d.gen
}

// Current reports whether gen is the latest generation.
func (d *Debouncer) Current(gen int) bool {
	return gen == d.gen
}

// Inflight is a single-slot handle for the most recent list request.
// Starting a new request cancels the previous context and advances the
// generation; a completion carrying a stale generation must be dropped by
// the caller, which gives last-write-wins semantics across overlapping
// requests.
type Inflight struct {
	gen    int
	cancel context.CancelFunc
}

// Start cancels any outstanding request and returns the context and
// generation for the next one.
func (f *Inflight) Start(parent context.Context) (context.Context, int) {
	if f.cancel != nil {
		f.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	f.cancel = cancel
	f.gen++
	return ctx, f.gen
}

// Current reports whether gen belongs to the most recently started request.
func (f *Inflight) Current(gen int) bool {
	return gen == f.gen
}

// Cancel aborts the outstanding request, if any.
func (f *Inflight) Cancel() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}
