package adapter

import (
	"fmt"

	"pipelined.dev/audiostream"
)

// ChannelCopier duplicates a channel of the source.
type ChannelCopier[T audiostream.Sample] struct {
	source audiostream.Source[T]
	from   int
	to     int
	out    audiostream.Buffer[T]
	copied []T
	sticky audiostream.Sticky[T]
}

// CopyChannel returns a stage that copies channel from into channel to. If
// to equals the number of source channels, the copy is appended as a new
// channel, otherwise existing channel is overwritten. Any other index is a
// precondition violation and causes panic on the pull.
func CopyChannel[T audiostream.Sample](source audiostream.Source[T], from, to int) *ChannelCopier[T] {
	if from < 0 || to < 0 {
		panic(fmt.Sprintf("adapter: negative channel index from %d to %d", from, to))
	}
	return &ChannelCopier[T]{
		source: source,
		from:   from,
		to:     to,
	}
}

// Next pulls the source and copies the channel.
func (c *ChannelCopier[T]) Next() audiostream.Result[T] {
	if r, ok := c.sticky.Result(); ok {
		return r
	}
	r := c.sticky.Keep(c.source.Next())
	if r.Kind != audiostream.KindBuffer {
		return r
	}
	n := r.Buffer.Channels()
	if c.from >= n || c.to > n {
		panic(fmt.Sprintf("adapter: can't copy channel %d to %d of %d channels", c.from, c.to, n))
	}
	channels := n
	if c.to == n {
		channels++
	}
	c.out = c.out[:0]
	c.out = append(c.out, r.Buffer...)
	if len(c.out) < channels {
		c.out = append(c.out, nil)
	}
	c.copied = append(c.copied[:0], r.Buffer[c.from]...)
	c.out[c.to] = c.copied
	return audiostream.Emit(c.out)
}
