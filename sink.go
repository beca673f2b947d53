package audiostream

import (
	"context"
	"sync/atomic"
)

type (
	// Sink is a consumer that drives the pipeline. RunOnce performs exactly
	// one pull-and-process cycle and returns false if there is no more
	// input.
	Sink interface {
		RunOnce() bool
	}

	// SinkFunc allows to use an ordinary function as a Sink.
	SinkFunc func() bool
)

// RunOnce calls fn.
func (fn SinkFunc) RunOnce() bool {
	return fn()
}

// Run processes buffers until the sink reports there is no more input or
// stop is set. The flag is checked once per buffer, before every pull. If
// stop is nil or never set, it's equivalent to calling RunOnce until it
// returns false.
func Run(s Sink, stop *atomic.Bool) {
	for stop == nil || !stop.Load() {
		if !s.RunOnce() {
			return
		}
	}
}

// RunContext processes buffers until the sink reports there is no more
// input or context is done. The context is checked once per buffer, before
// every pull. Context error is returned if execution was cancelled.
func RunContext(ctx context.Context, s Sink) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !s.RunOnce() {
			return nil
		}
	}
}
