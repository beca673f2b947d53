// Package mock provides mocks for pipeline components and allows to execute
// integration tests.
package mock

import (
	"pipelined.dev/audiostream"
)

const (
	defaultBufferSize = 512
	defaultSampleRate = 44100
)

// Source mocks an audiostream.Source. It produces Limit samples per channel
// with constant Value in buffers of BufferSize samples. The sample rate is
// announced before the first buffer.
type Source[T audiostream.Sample] struct {
	Counter
	Limit       int
	Channels    int
	BufferSize  int
	SampleRate  int
	Value       T
	ErrorOnCall error

	buffer    audiostream.Buffer[T]
	announced bool
	sticky    audiostream.Sticky[T]
}

// Next returns new buffer for pipe.
func (m *Source[T]) Next() audiostream.Result[T] {
	if r, ok := m.sticky.Result(); ok {
		return r
	}
	if m.ErrorOnCall != nil {
		return m.sticky.Keep(audiostream.Fail[T](m.ErrorOnCall))
	}
	if !m.announced {
		m.announced = true
		return audiostream.Rate[T](m.sampleRate())
	}
	if m.Samples >= m.Limit {
		return m.sticky.Keep(audiostream.EndOfStream[T]())
	}
	if m.buffer == nil {
		m.buffer = audiostream.MakeBuffer[T](m.channels(), m.bufferSize())
	}

	// check if we need a shorter buffer.
	bs := m.bufferSize()
	if left := m.Limit - m.Samples; left < bs {
		bs = left
	}
	for i := range m.buffer {
		m.buffer[i] = m.buffer[i][:bs]
		for j := range m.buffer[i] {
			m.buffer[i][j] = m.Value
		}
	}
	m.advance(bs)
	return audiostream.Emit(m.buffer)
}

func (m *Source[T]) channels() int {
	if m.Channels == 0 {
		return 1
	}
	return m.Channels
}

func (m *Source[T]) bufferSize() int {
	if m.BufferSize == 0 {
		return defaultBufferSize
	}
	return m.BufferSize
}

func (m *Source[T]) sampleRate() int {
	if m.SampleRate == 0 {
		return defaultSampleRate
	}
	return m.SampleRate
}

// Buffers mocks an audiostream.Source with predefined buffers. Every
// buffer is copied into the mock's own storage before it's returned, so
// stages can modify it in place. After the last buffer, Result is
// returned, end of stream if it's not set.
type Buffers[T audiostream.Sample] struct {
	Counter
	Buffers []audiostream.Buffer[T]
	Result  *audiostream.Result[T]

	storage audiostream.Buffer[T]
}

// Next returns the next predefined buffer.
func (m *Buffers[T]) Next() audiostream.Result[T] {
	if m.Messages >= len(m.Buffers) {
		if m.Result != nil {
			return *m.Result
		}
		return audiostream.EndOfStream[T]()
	}
	b := m.Buffers[m.Messages]
	m.storage = m.storage[:0]
	for i := range b {
		m.storage = append(m.storage, append([]T(nil), b[i]...))
	}
	m.advance(b.Len())
	return audiostream.Emit(m.storage)
}

// MonoSource mocks an audiostream.MonoSource with predefined buffers. Every
// buffer is copied into the mock's own storage before it's returned.
type MonoSource[T audiostream.Sample] struct {
	Counter
	Buffers [][]T

	storage []T
}

// Next returns the next predefined buffer.
func (m *MonoSource[T]) Next() ([]T, bool) {
	if m.Messages >= len(m.Buffers) {
		return nil, false
	}
	m.storage = append(m.storage[:0], m.Buffers[m.Messages]...)
	m.advance(len(m.storage))
	return m.storage, true
}

// Sink mocks an audiostream.Sink. It returns false when Limit number of
// cycles is reached. Negative limit means sink never finishes.
type Sink struct {
	Counter
	Limit int
}

// RunOnce counts the cycle.
func (m *Sink) RunOnce() bool {
	m.advance(0)
	return m.Limit < 0 || m.Messages < m.Limit
}

// Device mocks a playback device. Buffer is not thread-safe, so should not
// be checked while pipe is running.
type Device[T audiostream.Sample] struct {
	Counter
	Played       []T
	Discard      bool
	Closed       bool
	ErrorOnPlay  error
	ErrorOnClose error
}

// Play records interleaved samples.
func (m *Device[T]) Play(interleaved []T) error {
	if m.ErrorOnPlay != nil {
		return m.ErrorOnPlay
	}
	if !m.Discard {
		m.Played = append(m.Played, interleaved...)
	}
	m.advance(len(interleaved))
	return nil
}

// Close marks device as closed.
func (m *Device[T]) Close() error {
	m.Closed = true
	return m.ErrorOnClose
}

// Counter counts messages and samples.
type Counter struct {
	Messages int
	Samples  int
}

// advance counter's metrics.
func (c *Counter) advance(size int) {
	c.Messages++
	c.Samples = c.Samples + size
}

// Reset resets counter's metrics.
func (c *Counter) Reset() {
	c.Messages, c.Samples = 0, 0
}
