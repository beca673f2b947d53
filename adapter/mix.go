package adapter

import (
	"fmt"

	vecmath "github.com/cwbudde/algo-vecmath"

	"pipelined.dev/audiostream"
)

// Mixer sums two mono sources with saturation.
type Mixer[T audiostream.Sample] struct {
	a, b audiostream.MonoSource[T]
	out  []T
	done bool
}

// Mix returns a mono source that mixes a and b sample by sample. The mix
// ends when either of sources ends. Buffers of both sources must have the
// same length, otherwise it panics.
func Mix[T audiostream.Sample](a, b audiostream.MonoSource[T]) *Mixer[T] {
	return &Mixer[T]{
		a: a,
		b: b,
	}
}

// Next pulls both sources and mixes their buffers.
func (m *Mixer[T]) Next() ([]T, bool) {
	if m.done {
		return nil, false
	}
	x, ok := m.a.Next()
	if !ok {
		m.done = true
		return nil, false
	}
	y, ok := m.b.Next()
	if !ok {
		m.done = true
		return nil, false
	}
	if len(x) != len(y) {
		panic(fmt.Sprintf("adapter: mixing buffers of different length %d and %d", len(x), len(y)))
	}
	m.out = append(m.out[:0], x...)
	if out, ok := any(m.out).([]float64); ok {
		vecmath.AddBlockInPlace(out, any(y).([]float64))
		return m.out, true
	}
	for i := range m.out {
		m.out[i] = audiostream.Mix(m.out[i], y[i])
	}
	return m.out, true
}
