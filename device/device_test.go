package device_test

import (
	"errors"
	"testing"

	"github.com/go-audio/audio"
	"github.com/stretchr/testify/assert"

	"pipelined.dev/audiostream"
	"pipelined.dev/audiostream/device"
	"pipelined.dev/audiostream/mock"
)

func TestSink(t *testing.T) {
	errMock := errors.New("mock error")
	testSink := func(source audiostream.Source[int16], dev *mock.Device[int16], format audio.Format, played []int16, expectedErr error) func(*testing.T) {
		return func(t *testing.T) {
			sink := device.NewSink[int16](source, dev, format)
			audiostream.Run(sink, nil)
			assert.Equal(t, played, dev.Played)
			assert.False(t, sink.RunOnce())
			if expectedErr == nil {
				assert.Nil(t, sink.Err())
			} else {
				assert.ErrorIs(t, sink.Err(), expectedErr)
			}
			assert.Nil(t, sink.Close())
			assert.True(t, dev.Closed)
		}
	}
	t.Run("stereo", testSink(
		&mock.Buffers[int16]{Buffers: []audiostream.Buffer[int16]{
			{{0, 1, 2, 3}, {10, 11, 12, 13}},
			{{4}, {14}},
		}},
		&mock.Device[int16]{},
		audio.Format{NumChannels: 2, SampleRate: 44100},
		[]int16{0, 10, 1, 11, 2, 12, 3, 13, 4, 14},
		nil,
	))
	t.Run("sample rate", testSink(
		&mock.Source[int16]{Limit: 10, SampleRate: 48000},
		&mock.Device[int16]{},
		audio.Format{NumChannels: 1, SampleRate: 44100},
		nil,
		device.ErrSampleRate,
	))
	t.Run("channels", testSink(
		&mock.Source[int16]{Limit: 10, Channels: 3},
		&mock.Device[int16]{},
		audio.Format{NumChannels: 2, SampleRate: 44100},
		nil,
		device.ErrChannels,
	))
	t.Run("stream error", testSink(
		&mock.Source[int16]{ErrorOnCall: errMock},
		&mock.Device[int16]{},
		audio.Format{NumChannels: 1, SampleRate: 44100},
		nil,
		errMock,
	))
	t.Run("play error", testSink(
		&mock.Source[int16]{Limit: 10},
		&mock.Device[int16]{ErrorOnPlay: errMock},
		audio.Format{NumChannels: 1, SampleRate: 44100},
		nil,
		errMock,
	))
}

func TestSinkSource(t *testing.T) {
	dev := &mock.Device[float32]{Discard: true}
	source := &mock.Source[float32]{Limit: 1000, Channels: 2, BufferSize: 100, Value: 0.5}
	sink := device.NewSink[float32](source, dev, audio.Format{NumChannels: 2, SampleRate: 44100})
	audiostream.Run(sink, nil)
	assert.Nil(t, sink.Err())
	assert.Equal(t, 10, dev.Messages)
	assert.Equal(t, 2000, dev.Samples)
}
