package goaudio

import (
	"fmt"

	"github.com/go-audio/audio"

	"pipelined.dev/audiostream"
	"pipelined.dev/audiostream/interleave"
)

// Collector is a sink that accumulates the source into memory.
type Collector[T audiostream.Sample] struct {
	source   audiostream.Source[T]
	channels int
	rate     int
	data     []T
	frame    []T
	err      error
	done     bool
}

// NewCollector returns a sink that collects the source.
func NewCollector[T audiostream.Sample](source audiostream.Source[T]) *Collector[T] {
	return &Collector[T]{
		source: source,
	}
}

// RunOnce pulls the source and appends the buffer.
func (c *Collector[T]) RunOnce() bool {
	if c.done {
		return false
	}
	r := c.source.Next()
	switch r.Kind {
	case audiostream.KindBuffer:
		if c.channels == 0 {
			c.channels = r.Buffer.Channels()
		}
		if r.Buffer.Channels() != c.channels {
			c.done = true
			c.err = fmt.Errorf("%w: %d to %d", audiostream.ErrChannelCount, c.channels, r.Buffer.Channels())
			return false
		}
		size := r.Buffer.Size()
		if cap(c.frame) < size {
			c.frame = make([]T, size)
		}
		c.frame = c.frame[:size]
		interleave.Interleave(r.Buffer, c.frame)
		c.data = append(c.data, c.frame...)
		return true
	case audiostream.KindSampleRate:
		c.rate = r.SampleRate
		return true
	case audiostream.KindError:
		c.err = r.Err
	}
	c.done = true
	return false
}

// Err returns the error that stopped the collector.
func (c *Collector[T]) Err() error {
	return c.err
}

// Format returns format of collected data.
func (c *Collector[T]) Format() *audio.Format {
	return &audio.Format{
		NumChannels: c.channels,
		SampleRate:  c.rate,
	}
}

// FloatBuffer returns collected data as float buffer.
func (c *Collector[T]) FloatBuffer() *audio.FloatBuffer {
	data := make([]float64, len(c.data))
	for i, v := range c.data {
		data[i] = audiostream.ToFloat[float64](v)
	}
	return &audio.FloatBuffer{
		Format: c.Format(),
		Data:   data,
	}
}

// IntBuffer returns collected data as int buffer of provided bit depth.
func (c *Collector[T]) IntBuffer(bitDepth int) (*audio.IntBuffer, error) {
	if err := ValidBitDepth(bitDepth); err != nil {
		return nil, err
	}
	data := make([]int, len(c.data))
	for i, v := range c.data {
		data[i] = ToInt(v, bitDepth)
	}
	return &audio.IntBuffer{
		Format:         c.Format(),
		Data:           data,
		SourceBitDepth: bitDepth,
	}, nil
}
