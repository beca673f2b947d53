package adapter

import (
	"fmt"

	"pipelined.dev/audiostream"
)

// channelView is a mono source that yields a borrowed channel once per pull
// of the filter.
type channelView[T audiostream.Sample] struct {
	samples []T
	ready   bool
}

func (v *channelView[T]) Next() ([]T, bool) {
	if !v.ready {
		return nil, false
	}
	v.ready = false
	return v.samples, true
}

// BuildFunc builds a mono filter on top of a channel.
type BuildFunc[T audiostream.Sample] func(channel audiostream.MonoSource[T]) audiostream.MonoSource[T]

// Filter applies mono filters to every channel of the source.
type Filter[T audiostream.Sample] struct {
	source  audiostream.Source[T]
	build   BuildFunc[T]
	views   []*channelView[T]
	filters []audiostream.MonoSource[T]
	out     audiostream.Buffer[T]
	sticky  audiostream.Sticky[T]
}

// MonoFilter returns a stage that applies a separate mono filter to every
// channel of the source. Filters are built with build on the first buffer.
// Every filter must produce exactly one buffer per pull of its channel.
// When any filter ends, the stage ends.
func MonoFilter[T audiostream.Sample](source audiostream.Source[T], build BuildFunc[T]) *Filter[T] {
	return &Filter[T]{
		source: source,
		build:  build,
	}
}

// Next pulls the source and filters every channel.
func (f *Filter[T]) Next() audiostream.Result[T] {
	if r, ok := f.sticky.Result(); ok {
		return r
	}
	r := f.sticky.Keep(f.source.Next())
	if r.Kind != audiostream.KindBuffer {
		return r
	}
	n := r.Buffer.Channels()
	if f.filters == nil {
		f.bind(n)
	}
	if len(f.filters) != n {
		return f.sticky.Keep(audiostream.Fail[T](
			fmt.Errorf("%w: %d to %d", audiostream.ErrChannelCount, len(f.filters), n),
		))
	}
	f.out = f.out[:0]
	for i := range f.filters {
		f.views[i].samples, f.views[i].ready = r.Buffer[i], true
		b, ok := f.filters[i].Next()
		if !ok {
			return f.sticky.Keep(audiostream.EndOfStream[T]())
		}
		f.out = append(f.out, b)
	}
	if err := f.out.Validate(); err != nil {
		return f.sticky.Keep(audiostream.Fail[T](err))
	}
	return audiostream.Emit(f.out)
}

func (f *Filter[T]) bind(channels int) {
	f.views = make([]*channelView[T], channels)
	f.filters = make([]audiostream.MonoSource[T], channels)
	for i := range f.views {
		f.views[i] = &channelView[T]{}
		f.filters[i] = f.build(f.views[i])
	}
}
