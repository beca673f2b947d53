package audiostream

import (
	"math"
)

type (
	// Sample is a type constraint for supported sample formats.
	Sample interface {
		int8 | int16 | int32 | float32 | float64
	}

	// Float is a type constraint for intermediate conversion formats.
	Float interface {
		float32 | float64
	}
)

// Max returns the maximum value of a valid sample.
func Max[T Sample]() T {
	var v T
	switch p := any(&v).(type) {
	case *int8:
		*p = math.MaxInt8
	case *int16:
		*p = math.MaxInt16
	case *int32:
		*p = math.MaxInt32
	case *float32:
		*p = 1
	case *float64:
		*p = 1
	}
	return v
}

// Min returns the minimum value of a valid sample.
func Min[T Sample]() T {
	var v T
	switch p := any(&v).(type) {
	case *int8:
		*p = math.MinInt8
	case *int16:
		*p = math.MinInt16
	case *int32:
		*p = math.MinInt32
	case *float32:
		*p = -1
	case *float64:
		*p = -1
	}
	return v
}

// ClipsHard returns true if values outside of [Min, Max] cannot be
// represented by the format.
func ClipsHard[T Sample]() bool {
	var v T
	switch any(v).(type) {
	case float32, float64:
		return false
	}
	return true
}

// Clip returns the value clamped into [Min, Max].
func Clip[T Sample](x T) T {
	if lo := Min[T](); x < lo {
		return lo
	}
	if hi := Max[T](); x > hi {
		return hi
	}
	return x
}

// Mix adds two samples. Integer formats saturate at Min and Max instead of
// wrapping around.
func Mix[T Sample](a, b T) T {
	sum := a + b
	if !ClipsHard[T]() {
		return sum
	}
	// overflow only happens when both operands share a sign.
	switch {
	case a > 0 && b > 0 && sum < 0:
		return Max[T]()
	case a < 0 && b < 0 && sum >= 0:
		return Min[T]()
	}
	return sum
}

// ToFloat maps the sample into [-1, 1]. Floating formats may fall outside of
// this range.
func ToFloat[F Float, T Sample](x T) F {
	return F(x) / F(Max[T]())
}

// FromFloat maps x from [-1, 1] into the sample format. Integer formats are
// clamped before the cast and rounded to the nearest value, so the round trip
// through ToFloat is lossless. NaN maps to zero for integer formats.
func FromFloat[T Sample, F Float](x F) T {
	scale := F(Max[T]())
	y := x * scale
	if !ClipsHard[T]() {
		return T(y)
	}
	switch {
	case y != y:
		return 0
	case y >= scale:
		return Max[T]()
	case y <= F(Min[T]()):
		return Min[T]()
	}
	return T(math.Round(float64(y)))
}

// Convert converts the sample into another format through the intermediate
// float format I. float64 round trips all integer formats shorter than 52
// bits, float32 is enough for formats up to 24 bits.
func Convert[X Sample, I Float, T Sample](x T) X {
	return FromFloat[X](ToFloat[I](x))
}
