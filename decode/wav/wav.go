// Package wav decodes PCM WAV files of 16, 24 and 32 bit depth.
package wav

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"pipelined.dev/audiostream"
	"pipelined.dev/audiostream/goaudio"
	"pipelined.dev/audiostream/interleave"
)

// BufferFrames is the number of frames decoded per pull.
const BufferFrames = 1024

var (
	// ErrInvalidFile is returned when file is not a valid WAV.
	ErrInvalidFile = errors.New("wav: invalid file")
	// ErrBitDepth is returned when bit depth is not supported.
	ErrBitDepth = errors.New("wav: unsupported bit depth")
)

type pcmReader interface {
	PCMBuffer(*audio.IntBuffer) (int, error)
}

// Source decodes WAV file into buffers of T. The sample rate is announced
// before the first buffer.
type Source[T audiostream.Sample] struct {
	reader     pcmReader
	ints       *audio.IntBuffer
	samples    []T
	buffer     audiostream.Buffer[T]
	sampleRate int
	bitDepth   int
	announced  bool
	sticky     audiostream.Sticky[T]
}

// Open reads the file header and returns the source.
func Open[T audiostream.Sample](r io.ReadSeeker) (*Source[T], error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, ErrInvalidFile
	}
	return newSource[T](d, d.Format(), int(d.BitDepth))
}

func newSource[T audiostream.Sample](r pcmReader, format *audio.Format, bitDepth int) (*Source[T], error) {
	switch bitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrBitDepth, bitDepth)
	}
	return &Source[T]{
		reader: r,
		ints: &audio.IntBuffer{
			Format:         format,
			Data:           make([]int, BufferFrames*format.NumChannels),
			SourceBitDepth: bitDepth,
		},
		samples:    make([]T, BufferFrames*format.NumChannels),
		sampleRate: format.SampleRate,
		bitDepth:   bitDepth,
	}, nil
}

// SampleRate of the file.
func (s *Source[T]) SampleRate() int {
	return s.sampleRate
}

// Channels returns number of channels in the file.
func (s *Source[T]) Channels() int {
	return s.ints.Format.NumChannels
}

// Next decodes the next buffer.
func (s *Source[T]) Next() audiostream.Result[T] {
	if r, ok := s.sticky.Result(); ok {
		return r
	}
	if !s.announced {
		s.announced = true
		return audiostream.Rate[T](s.sampleRate)
	}
	n, err := s.reader.PCMBuffer(s.ints)
	if err != nil && !errors.Is(err, io.EOF) {
		return s.sticky.Keep(audiostream.Fail[T](audiostream.NewStreamError("wav decode", err)))
	}
	channels := s.Channels()
	frames := n / channels
	if frames == 0 {
		return s.sticky.Keep(audiostream.EndOfStream[T]())
	}
	samples := s.samples[:frames*channels]
	for i := range samples {
		samples[i] = goaudio.FromInt[T](s.ints.Data[i], s.bitDepth)
	}
	if s.buffer == nil {
		s.buffer = audiostream.MakeBuffer[T](channels, BufferFrames)
	}
	for i := range s.buffer {
		s.buffer[i] = s.buffer[i][:frames]
	}
	interleave.Deinterleave(samples, s.buffer)
	return audiostream.Emit(s.buffer)
}
