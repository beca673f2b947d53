// Package device plays pipelines on hardware outputs.
//
// Sink pulls the source, interleaves every buffer and passes it to a Device.
// Bindings to audio libraries live in subpackages.
package device

import (
	"errors"
	"fmt"

	"github.com/go-audio/audio"
	"github.com/sirupsen/logrus"

	"pipelined.dev/audiostream"
	"pipelined.dev/audiostream/interleave"
	"pipelined.dev/audiostream/log"
)

var (
	// ErrSampleRate is returned when source announces sample rate that
	// differs from the device's.
	ErrSampleRate = errors.New("sample rate mismatch")
	// ErrChannels is returned when source buffer has number of channels that
	// differs from the device's.
	ErrChannels = errors.New("number of channels mismatch")
	// ErrFormat is returned when device doesn't support the sample type.
	ErrFormat = errors.New("unsupported sample format")
)

// Device plays interleaved samples.
type Device[T audiostream.Sample] interface {
	Play(interleaved []T) error
	Close() error
}

// Sink plays the source on the device.
type Sink[T audiostream.Sample] struct {
	source      audiostream.Source[T]
	device      Device[T]
	format      audio.Format
	interleaver *interleave.Interleaver[T]
	buffer      []T
	err         error
	done        bool
	logger      *logrus.Entry
}

// NewSink returns a sink that plays source on the device of provided
// format.
func NewSink[T audiostream.Sample](source audiostream.Source[T], device Device[T], format audio.Format) *Sink[T] {
	return &Sink[T]{
		source:      source,
		device:      device,
		format:      format,
		interleaver: interleave.New[T](),
		logger:      log.Component("device"),
	}
}

// RunOnce pulls the source and plays the buffer. It returns false when the
// source is done or an error happened.
func (s *Sink[T]) RunOnce() bool {
	if s.done {
		return false
	}
	r := s.source.Next()
	switch r.Kind {
	case audiostream.KindBuffer:
		if r.Buffer.Channels() != s.format.NumChannels {
			return s.stop(fmt.Errorf("%w: got %d, device has %d", ErrChannels, r.Buffer.Channels(), s.format.NumChannels))
		}
		size := r.Buffer.Size()
		if cap(s.buffer) < size {
			s.buffer = make([]T, size)
		}
		s.buffer = s.buffer[:size]
		s.interleaver.Interleave(r.Buffer, s.buffer)
		if err := s.device.Play(s.buffer); err != nil {
			return s.stop(fmt.Errorf("play: %w", err))
		}
		return true
	case audiostream.KindSampleRate:
		if r.SampleRate != s.format.SampleRate {
			return s.stop(fmt.Errorf("%w: got %d, device has %d", ErrSampleRate, r.SampleRate, s.format.SampleRate))
		}
		return true
	case audiostream.KindError:
		return s.stop(r.Err)
	}
	return s.stop(nil)
}

func (s *Sink[T]) stop(err error) bool {
	s.done, s.err = true, err
	if err != nil {
		s.logger.WithError(err).Warn("sink stopped")
	} else {
		s.logger.Debug("sink reached end of stream")
	}
	return false
}

// Err returns the error that stopped the sink. It's nil if the sink is
// running or reached the end of stream.
func (s *Sink[T]) Err() error {
	return s.err
}

// Close closes the device.
func (s *Sink[T]) Close() error {
	return s.device.Close()
}
