// Package run executes pipelines in the background.
package run

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"pipelined.dev/audiostream"
	"pipelined.dev/audiostream/log"
)

// ErrStopped is returned by Wait if the run was stopped before the sink
// was done.
var ErrStopped = errors.New("run stopped")

// Run executes the sink in a separate goroutine. The whole chain of the
// sink must not be used by other goroutines until the run is done.
type Run struct {
	id     xid.ID
	stop   atomic.Bool
	done   chan struct{}
	err    error
	logger *logrus.Entry
}

// errorer is implemented by sinks that keep the error that stopped them.
type errorer interface {
	Err() error
}

// Start starts the sink execution. The run is stopped when the context is
// done.
func Start(ctx context.Context, sink audiostream.Sink) *Run {
	r := Run{
		id:   xid.New(),
		done: make(chan struct{}),
	}
	r.logger = log.Component("run").WithField("run", r.id.String())
	go r.watch(ctx)
	go r.run(ctx, sink)
	return &r
}

func (r *Run) run(ctx context.Context, sink audiostream.Sink) {
	defer close(r.done)
	r.logger.Debug("started")
	var finished bool
	audiostream.Run(audiostream.SinkFunc(func() bool {
		finished = !sink.RunOnce()
		return !finished
	}), &r.stop)
	switch {
	case finished:
		if e, ok := sink.(errorer); ok {
			r.err = e.Err()
		}
	case ctx.Err() != nil:
		r.err = ctx.Err()
	default:
		r.err = ErrStopped
	}
	r.logger.WithError(r.err).Debug("done")
}

// watch sets the stop flag when context is done.
func (r *Run) watch(ctx context.Context) {
	select {
	case <-ctx.Done():
		r.stop.Store(true)
	case <-r.done:
	}
}

// ID returns unique identifier of the run.
func (r *Run) ID() string {
	return r.id.String()
}

// Stop requests the run to stop. The sink stops at the next buffer
// boundary.
func (r *Run) Stop() {
	r.stop.Store(true)
}

// Done returns a channel that is closed when the run is done.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the run is done and returns the error that stopped it.
// Context error is returned if the context was done, ErrStopped if Stop
// was called.
func (r *Run) Wait() error {
	<-r.done
	return r.err
}
