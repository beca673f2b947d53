package portaudio

import (
	"errors"
	"testing"

	"github.com/go-audio/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pipelined.dev/audiostream"
	"pipelined.dev/audiostream/device"
	"pipelined.dev/audiostream/mock"
)

type fakeStream[T audiostream.Sample] struct {
	buffer   *[]T
	written  []T
	started  bool
	stopped  bool
	closed   bool
	errWrite error
}

func (s *fakeStream[T]) Start() error {
	s.started = true
	return nil
}

func (s *fakeStream[T]) Write() error {
	if s.errWrite != nil {
		return s.errWrite
	}
	s.written = append(s.written, *s.buffer...)
	return nil
}

func (s *fakeStream[T]) Stop() error {
	s.stopped = true
	return nil
}

func (s *fakeStream[T]) Close() error {
	s.closed = true
	return nil
}

type fakeLib[T audiostream.Sample] struct {
	stream      *fakeStream[T]
	initialized int
	terminated  int
	errOpen     error
	channels    int
	sampleRate  float64
	frames      int
}

func (l *fakeLib[T]) api() api {
	return api{
		initialize: func() error {
			l.initialized++
			return nil
		},
		terminate: func() error {
			l.terminated++
			return nil
		},
		open: func(channels int, sampleRate float64, frames int, buffer any) (stream, error) {
			if l.errOpen != nil {
				return nil, l.errOpen
			}
			l.channels, l.sampleRate, l.frames = channels, sampleRate, frames
			l.stream = &fakeStream[T]{buffer: buffer.(*[]T)}
			return l.stream, nil
		},
	}
}

func TestDevice(t *testing.T) {
	fake := &fakeLib[int16]{}
	d, err := open[int16](fake.api(), audio.Format{NumChannels: 2, SampleRate: 48000}, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, fake.initialized)
	assert.Equal(t, 2, fake.channels)
	assert.Equal(t, 48000.0, fake.sampleRate)
	assert.Equal(t, 2, fake.frames)
	assert.True(t, fake.stream.started)

	assert.NoError(t, d.Play([]int16{1, 2, 3}))
	assert.Nil(t, fake.stream.written)
	assert.NoError(t, d.Play([]int16{4, 5, 6, 7, 8, 9}))
	assert.Equal(t, []int16{1, 2, 3, 4, 5, 6, 7, 8}, fake.stream.written)

	assert.NoError(t, d.Close())
	assert.Equal(t, []int16{1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 0, 0}, fake.stream.written)
	assert.True(t, fake.stream.stopped)
	assert.True(t, fake.stream.closed)
	assert.Equal(t, 1, fake.terminated)
}

func TestDeviceErrors(t *testing.T) {
	errMock := errors.New("mock")

	_, err := open[float64]((&fakeLib[float64]{}).api(), audio.Format{NumChannels: 1, SampleRate: 44100}, 16)
	assert.ErrorIs(t, err, device.ErrFormat)

	fake := &fakeLib[float32]{errOpen: errMock}
	_, err = open[float32](fake.api(), audio.Format{NumChannels: 1, SampleRate: 44100}, 16)
	assert.ErrorIs(t, err, errMock)
	assert.Equal(t, 1, fake.terminated)

	fake = &fakeLib[float32]{}
	d, err := open[float32](fake.api(), audio.Format{NumChannels: 1, SampleRate: 44100}, 1)
	require.NoError(t, err)
	fake.stream.errWrite = errMock
	assert.ErrorIs(t, d.Play([]float32{0.5}), errMock)
}

func TestSink(t *testing.T) {
	fake := &fakeLib[int32]{}
	format := audio.Format{NumChannels: 2, SampleRate: 44100}
	d, err := open[int32](fake.api(), format, 64)
	require.NoError(t, err)

	source := &mock.Source[int32]{Limit: 100, Channels: 2, BufferSize: 30, Value: 7}
	sink := device.NewSink[int32](source, d, format)
	audiostream.Run(sink, nil)
	assert.Nil(t, sink.Err())
	assert.NoError(t, sink.Close())
	// 100 frames are padded to two stream buffers.
	assert.Len(t, fake.stream.written, 256)
	for i, v := range fake.stream.written {
		if i < 200 {
			assert.Equal(t, int32(7), v)
		} else {
			assert.Equal(t, int32(0), v)
		}
	}
}
