// Package synth provides signal generators. All generators are endless mono
// sources that reuse the same buffer for every pull.
package synth

import (
	"fmt"
	"math"
	"math/rand/v2"

	"pipelined.dev/audiostream"
)

// Null is a source of silence.
type Null[T audiostream.Sample] struct {
	source *audiostream.Uninitialized[T]
}

// NewNull returns a source of silence with buffers of size samples.
func NewNull[T audiostream.Sample](size int) *Null[T] {
	return &Null[T]{
		source: audiostream.NewUninitialized[T](size),
	}
}

// Next returns buffer of zeros.
func (n *Null[T]) Next() ([]T, bool) {
	b, ok := n.source.Next()
	if !ok {
		return nil, false
	}
	clear(b)
	return b, true
}

// Tone is a full-scale sine wave starting at zero. The wave is computed in
// type P, float64 can be used for better precision of long periods.
type Tone[T audiostream.Sample, P audiostream.Float] struct {
	source *audiostream.Uninitialized[T]
	period int
	t      int
}

// NewTone returns a tone with period in samples and buffers of size
// samples. It panics if period is not positive.
func NewTone[T audiostream.Sample, P audiostream.Float](size, period int) *Tone[T, P] {
	if period <= 0 {
		panic(fmt.Sprintf("synth: invalid tone period %d", period))
	}
	return &Tone[T, P]{
		source: audiostream.NewUninitialized[T](size),
		period: period,
	}
}

// Next returns the next part of the wave.
func (s *Tone[T, P]) Next() ([]T, bool) {
	b, ok := s.source.Next()
	if !ok {
		return nil, false
	}
	for i := range b {
		phase := P(s.t) * P(2*math.Pi) / P(s.period)
		b[i] = audiostream.FromFloat[T](P(math.Sin(float64(phase))))
		s.t++
		if s.t == s.period {
			s.t = 0
		}
	}
	return b, true
}

// WhiteNoise is a gaussian white noise with standard deviation of quarter
// of the full scale. Values are clipped to the nominal range.
type WhiteNoise[T audiostream.Sample] struct {
	source *audiostream.Uninitialized[T]
	rand   *rand.Rand
}

// NewWhiteNoise returns white noise with buffers of size samples generated
// with provided random source.
func NewWhiteNoise[T audiostream.Sample](size int, r *rand.Rand) *WhiteNoise[T] {
	return &WhiteNoise[T]{
		source: audiostream.NewUninitialized[T](size),
		rand:   r,
	}
}

// Next returns the next noise buffer.
func (n *WhiteNoise[T]) Next() ([]T, bool) {
	b, ok := n.source.Next()
	if !ok {
		return nil, false
	}
	for i := range b {
		b[i] = audiostream.FromFloat[T](audiostream.Clip(n.rand.NormFloat64() * 0.25))
	}
	return b, true
}
