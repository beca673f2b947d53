// Package goaudio bridges pipelines and go-audio buffers.
package goaudio

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-audio/audio"

	"pipelined.dev/audiostream"
	"pipelined.dev/audiostream/interleave"
)

// ErrBitDepth is returned when bit depth is not supported.
var ErrBitDepth = errors.New("unsupported bit depth")

// ValidBitDepth returns ErrBitDepth if bit depth is not one of 8, 16, 24
// or 32.
func ValidBitDepth(bitDepth int) error {
	switch bitDepth {
	case 8, 16, 24, 32:
		return nil
	}
	return fmt.Errorf("%w: %d", ErrBitDepth, bitDepth)
}

const max24 = 1<<23 - 1

// FromInt converts a signed integer sample of provided bit depth.
func FromInt[T audiostream.Sample](v, bitDepth int) T {
	switch bitDepth {
	case 8:
		return audiostream.Convert[T, float64](int8(v))
	case 16:
		return audiostream.Convert[T, float64](int16(v))
	case 24:
		return audiostream.FromFloat[T](float64(v) / max24)
	}
	return audiostream.Convert[T, float64](int32(v))
}

// ToInt converts a sample into a signed integer of provided bit depth.
func ToInt[T audiostream.Sample](v T, bitDepth int) int {
	switch bitDepth {
	case 8:
		return int(audiostream.Convert[int8, float64](v))
	case 16:
		return int(audiostream.Convert[int16, float64](v))
	case 24:
		f := audiostream.Clip(audiostream.ToFloat[float64](v))
		return int(math.Round(f * max24))
	}
	return int(audiostream.Convert[int32, float64](v))
}

// Source emits buffers of interleaved go-audio data.
type Source[T audiostream.Sample] struct {
	convert   func(i int) T
	size      int
	format    *audio.Format
	frames    int
	position  int
	samples   []T
	buffer    audiostream.Buffer[T]
	announced bool
}

// NewIntSource returns a source of int buffer data in chunks of frames.
func NewIntSource[T audiostream.Sample](b *audio.IntBuffer, frames int) (*Source[T], error) {
	bitDepth := b.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = 16
	}
	if err := ValidBitDepth(bitDepth); err != nil {
		return nil, err
	}
	return newSource(b.Format, len(b.Data), frames, func(i int) T {
		return FromInt[T](b.Data[i], bitDepth)
	}), nil
}

// NewFloatSource returns a source of float buffer data in chunks of
// frames.
func NewFloatSource[T audiostream.Sample](b *audio.FloatBuffer, frames int) *Source[T] {
	return newSource(b.Format, len(b.Data), frames, func(i int) T {
		return audiostream.FromFloat[T](b.Data[i])
	})
}

func newSource[T audiostream.Sample](format *audio.Format, size, frames int, convert func(int) T) *Source[T] {
	if frames <= 0 {
		panic(fmt.Sprintf("goaudio: invalid number of frames %d", frames))
	}
	return &Source[T]{
		convert: convert,
		size:    size - size%format.NumChannels,
		format:  format,
		frames:  frames,
		samples: make([]T, frames*format.NumChannels),
		buffer:  audiostream.MakeBuffer[T](format.NumChannels, frames),
	}
}

// Next returns the next chunk of data.
func (s *Source[T]) Next() audiostream.Result[T] {
	if !s.announced {
		s.announced = true
		return audiostream.Rate[T](s.format.SampleRate)
	}
	if s.position >= s.size {
		return audiostream.EndOfStream[T]()
	}
	channels := s.format.NumChannels
	n := min(s.frames*channels, s.size-s.position)
	samples := s.samples[:n]
	for i := range samples {
		samples[i] = s.convert(s.position + i)
	}
	s.position += n
	for i := range s.buffer {
		s.buffer[i] = s.buffer[i][:n/channels]
	}
	interleave.Deinterleave(samples, s.buffer)
	return audiostream.Emit(s.buffer)
}
