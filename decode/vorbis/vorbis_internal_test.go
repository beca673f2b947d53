package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"pipelined.dev/audiostream"
)

// fakeReader returns predefined interleaved samples.
type fakeReader struct {
	sampleRate int
	channels   int
	samples    []float32
	offset     int
	err        error
	// eofWithData returns io.EOF along with the last frames.
	eofWithData bool
}

func (r *fakeReader) SampleRate() int { return r.sampleRate }
func (r *fakeReader) Channels() int   { return r.channels }

func (r *fakeReader) Read(p []float32) (int, error) {
	if r.offset >= len(r.samples) {
		if r.err != nil {
			return 0, r.err
		}
		return 0, io.EOF
	}
	n := copy(p, r.samples[r.offset:])
	r.offset += n
	if r.eofWithData && r.offset >= len(r.samples) {
		return n, io.EOF
	}
	return n, nil
}

func TestSource(t *testing.T) {
	testSource := func(reader *fakeReader, expected audiostream.Buffer[float32], expectedErr error) func(*testing.T) {
		return func(t *testing.T) {
			s := newSource(reader)
			r := s.Next()
			assert.Equal(t, audiostream.KindSampleRate, r.Kind)
			assert.Equal(t, reader.sampleRate, r.SampleRate)
			b, _, err := audiostream.Collect[float32](s)
			assert.Equal(t, expected, b)
			if expectedErr == nil {
				assert.Nil(t, err)
				assert.Equal(t, audiostream.KindEndOfStream, s.Next().Kind)
				return
			}
			assert.ErrorIs(t, err, expectedErr)
			var se *audiostream.StreamError
			assert.True(t, errors.As(err, &se))
			assert.Equal(t, audiostream.KindError, s.Next().Kind)
		}
	}
	t.Run("stereo", testSource(
		&fakeReader{sampleRate: 44100, channels: 2, samples: []float32{0.1, 0.2, 0.3, 0.4}},
		audiostream.Buffer[float32]{{0.1, 0.3}, {0.2, 0.4}},
		nil,
	))
	t.Run("eof with data", testSource(
		&fakeReader{sampleRate: 8000, channels: 1, samples: []float32{1, 2, 3}, eofWithData: true},
		audiostream.Buffer[float32]{{1, 2, 3}},
		nil,
	))
	t.Run("decode error", testSource(
		&fakeReader{sampleRate: 8000, channels: 1, samples: []float32{1}, err: io.ErrUnexpectedEOF},
		audiostream.Buffer[float32]{{1}},
		io.ErrUnexpectedEOF,
	))
	t.Run("empty", testSource(
		&fakeReader{sampleRate: 8000, channels: 2},
		nil,
		nil,
	))
}

func TestSourceBuffers(t *testing.T) {
	samples := make([]float32, (BufferFrames+10)*2)
	for i := range samples {
		samples[i] = float32(i % 2)
	}
	s := newSource(&fakeReader{sampleRate: 44100, channels: 2, samples: samples})
	assert.Equal(t, 2, s.Channels())
	assert.Equal(t, 44100, s.SampleRate())
	s.Next()
	r := s.Next()
	assert.Equal(t, BufferFrames, r.Buffer.Len())
	r = s.Next()
	assert.Equal(t, 10, r.Buffer.Len())
	assert.Equal(t, []float32{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, r.Buffer[1])
	assert.Equal(t, audiostream.KindEndOfStream, s.Next().Kind)
}

func TestOpenInvalid(t *testing.T) {
	_, err := Open(bytes.NewReader([]byte("This is not Ogg Vorbis data")))
	assert.Error(t, err)
	_, err = Open(bytes.NewReader(nil))
	assert.Error(t, err)
}
