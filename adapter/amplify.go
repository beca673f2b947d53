package adapter

import (
	vecmath "github.com/cwbudde/algo-vecmath"

	"pipelined.dev/audiostream"
)

// Amplifier multiplies every sample by a factor.
type Amplifier[T audiostream.Sample] struct {
	source audiostream.Source[T]
	factor float64
	sticky audiostream.Sticky[T]
}

// Amplify returns a stage that multiplies samples by factor. Samples are
// converted into float64, multiplied and converted back, so the clipping of
// the sample format applies.
func Amplify[T audiostream.Sample](source audiostream.Source[T], factor float64) *Amplifier[T] {
	return &Amplifier[T]{
		source: source,
		factor: factor,
	}
}

// Next pulls the source and amplifies the buffer in place.
func (a *Amplifier[T]) Next() audiostream.Result[T] {
	if r, ok := a.sticky.Result(); ok {
		return r
	}
	r := a.sticky.Keep(a.source.Next())
	if r.Kind != audiostream.KindBuffer {
		return r
	}
	if b, ok := any(r.Buffer).(audiostream.Buffer[float64]); ok {
		for i := range b {
			vecmath.ScaleBlockInPlace(b[i], a.factor)
		}
		return r
	}
	for i := range r.Buffer {
		ch := r.Buffer[i]
		for j := range ch {
			ch[j] = audiostream.FromFloat[T](audiostream.ToFloat[float64](ch[j]) * a.factor)
		}
	}
	return r
}
