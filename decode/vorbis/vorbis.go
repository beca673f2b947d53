// Package vorbis decodes Ogg Vorbis streams.
package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"pipelined.dev/audiostream"
	"pipelined.dev/audiostream/interleave"
)

// BufferFrames is the number of frames decoded per pull.
const BufferFrames = 1024

// oggReader is the subset of oggvorbis.Reader used by the source.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

// Source decodes Ogg Vorbis stream into float32 buffers. The sample rate is
// announced before the first buffer.
type Source struct {
	reader      oggReader
	interleaved []float32
	buffer      audiostream.Buffer[float32]
	announced   bool
	eof         bool
	sticky      audiostream.Sticky[float32]
}

// Open reads the stream headers and returns the source.
func Open(r io.Reader) (*Source, error) {
	reader, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("vorbis: %w", err)
	}
	return newSource(reader), nil
}

func newSource(r oggReader) *Source {
	return &Source{
		reader:      r,
		interleaved: make([]float32, BufferFrames*r.Channels()),
	}
}

// SampleRate of the stream.
func (s *Source) SampleRate() int {
	return s.reader.SampleRate()
}

// Channels returns number of channels in the stream.
func (s *Source) Channels() int {
	return s.reader.Channels()
}

// Next decodes the next buffer.
func (s *Source) Next() audiostream.Result[float32] {
	if r, ok := s.sticky.Result(); ok {
		return r
	}
	if !s.announced {
		s.announced = true
		return audiostream.Rate[float32](s.reader.SampleRate())
	}
	if s.eof {
		return s.sticky.Keep(audiostream.EndOfStream[float32]())
	}
	channels := s.reader.Channels()
	n, err := s.reader.Read(s.interleaved)
	switch {
	case errors.Is(err, io.EOF):
		s.eof = true
	case err != nil:
		return s.sticky.Keep(audiostream.Fail[float32](audiostream.NewStreamError("vorbis decode", err)))
	}
	// n counts interleaved values, not frames.
	frames := n / channels
	if frames == 0 {
		if s.eof {
			return s.sticky.Keep(audiostream.EndOfStream[float32]())
		}
		return s.Next()
	}
	if s.buffer == nil {
		s.buffer = audiostream.MakeBuffer[float32](channels, BufferFrames)
	}
	for i := range s.buffer {
		s.buffer[i] = s.buffer[i][:frames]
	}
	interleave.Deinterleave(s.interleaved[:frames*channels], s.buffer)
	return audiostream.Emit(s.buffer)
}
