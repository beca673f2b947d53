// Package mp3 decodes MP3 streams. Decoded streams are always stereo.
package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"

	"pipelined.dev/audiostream"
)

const (
	// BufferFrames is the number of frames decoded per pull.
	BufferFrames = 1024
	// Channels is the number of channels of decoded stream.
	Channels = 2

	frameBytes = Channels * 2
)

// mp3Reader is the subset of mp3.Decoder used by the source.
type mp3Reader interface {
	io.Reader
	SampleRate() int
}

// Source decodes MP3 stream into int16 stereo buffers. The sample rate is
// announced before the first buffer.
type Source struct {
	reader    mp3Reader
	data      []byte
	buffer    audiostream.Buffer[int16]
	announced bool
	eof       bool
	sticky    audiostream.Sticky[int16]
}

// Open decodes the stream headers and returns the source.
func Open(r io.Reader) (*Source, error) {
	d, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}
	return newSource(d), nil
}

func newSource(r mp3Reader) *Source {
	return &Source{
		reader: r,
		data:   make([]byte, BufferFrames*frameBytes),
		buffer: audiostream.MakeBuffer[int16](Channels, BufferFrames),
	}
}

// SampleRate of the stream.
func (s *Source) SampleRate() int {
	return s.reader.SampleRate()
}

// Next decodes the next buffer. Incomplete frame at the end of stream is
// dropped.
func (s *Source) Next() audiostream.Result[int16] {
	if r, ok := s.sticky.Result(); ok {
		return r
	}
	if !s.announced {
		s.announced = true
		return audiostream.Rate[int16](s.reader.SampleRate())
	}
	if s.eof {
		return s.sticky.Keep(audiostream.EndOfStream[int16]())
	}
	n, err := io.ReadFull(s.reader, s.data)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		s.eof = true
	case err != nil:
		return s.sticky.Keep(audiostream.Fail[int16](audiostream.NewStreamError("mp3 decode", err)))
	}
	frames := n / frameBytes
	if frames == 0 {
		return s.sticky.Keep(audiostream.EndOfStream[int16]())
	}
	left, right := s.buffer[0][:frames], s.buffer[1][:frames]
	for i := range frames {
		left[i] = int16(binary.LittleEndian.Uint16(s.data[i*frameBytes:]))
		right[i] = int16(binary.LittleEndian.Uint16(s.data[i*frameBytes+2:]))
	}
	s.buffer[0], s.buffer[1] = left, right
	return audiostream.Emit(s.buffer)
}
