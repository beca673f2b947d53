// Package portaudio plays pipelines on the default PortAudio output device.
package portaudio

import (
	"fmt"

	"github.com/go-audio/audio"
	"github.com/gordonklaus/portaudio"

	"pipelined.dev/audiostream"
	"pipelined.dev/audiostream/device"
)

// stream is a subset of portaudio.Stream used by the device.
type stream interface {
	Start() error
	Write() error
	Stop() error
	Close() error
}

type api struct {
	initialize func() error
	terminate  func() error
	open       func(channels int, sampleRate float64, framesPerBuffer int, buffer any) (stream, error)
}

var lib = api{
	initialize: portaudio.Initialize,
	terminate:  portaudio.Terminate,
	open: func(channels int, sampleRate float64, framesPerBuffer int, buffer any) (stream, error) {
		return portaudio.OpenDefaultStream(0, channels, sampleRate, framesPerBuffer, buffer)
	},
}

// Device writes interleaved samples to PortAudio stream. Samples are
// accumulated until the stream buffer is full.
type Device[T audiostream.Sample] struct {
	stream stream
	lib    api
	buffer []T
	filled int
}

// Open initializes PortAudio and starts the default output stream of
// provided format. Supported sample types are int8, int16, int32 and
// float32, device.ErrFormat is returned for any other.
func Open[T audiostream.Sample](format audio.Format, framesPerBuffer int) (*Device[T], error) {
	return open[T](lib, format, framesPerBuffer)
}

func open[T audiostream.Sample](lib api, format audio.Format, framesPerBuffer int) (*Device[T], error) {
	buffer := make([]T, framesPerBuffer*format.NumChannels)
	switch any(buffer).(type) {
	case []int8, []int16, []int32, []float32:
	default:
		return nil, fmt.Errorf("portaudio: %w: %T", device.ErrFormat, buffer)
	}
	if err := lib.initialize(); err != nil {
		return nil, fmt.Errorf("portaudio: initialize: %w", err)
	}
	// the buffer is bound to the stream and must not be reallocated.
	s, err := lib.open(format.NumChannels, float64(format.SampleRate), framesPerBuffer, &buffer)
	if err != nil {
		lib.terminate()
		return nil, fmt.Errorf("portaudio: open stream: %w", err)
	}
	if err := s.Start(); err != nil {
		s.Close()
		lib.terminate()
		return nil, fmt.Errorf("portaudio: start stream: %w", err)
	}
	return &Device[T]{
		stream: s,
		lib:    lib,
		buffer: buffer,
	}, nil
}

// Play copies samples into the stream buffer and writes it every time it's
// full.
func (d *Device[T]) Play(interleaved []T) error {
	for len(interleaved) > 0 {
		n := copy(d.buffer[d.filled:], interleaved)
		d.filled += n
		interleaved = interleaved[n:]
		if d.filled == len(d.buffer) {
			if err := d.stream.Write(); err != nil {
				return err
			}
			d.filled = 0
		}
	}
	return nil
}

// Close writes remaining samples padded with silence, stops the stream and
// terminates PortAudio.
func (d *Device[T]) Close() error {
	if d.filled > 0 {
		clear(d.buffer[d.filled:])
		d.filled = 0
		if err := d.stream.Write(); err != nil {
			return err
		}
	}
	if err := d.stream.Stop(); err != nil {
		return err
	}
	if err := d.stream.Close(); err != nil {
		return err
	}
	return d.lib.terminate()
}
