// Package interleave converts channel-major buffers into frame-major
// sequences and back.
//
// Two-channel int16 buffers are interleaved with vector instructions when
// the processor supports them. The kernel is selected once per process.
package interleave

import (
	"fmt"

	"pipelined.dev/audiostream"
)

// Interleave writes samples of all channels into out frame by frame:
// out[k] = channels[k%N][k/N]. It panics if channels have different lengths
// or out length is not N*L.
func Interleave[T audiostream.Sample](channels [][]T, out []T) {
	validate(channels, len(out))
	generic(channels, out)
}

// Deinterleave is the inverse of Interleave: channels[k%N][k/N] = in[k].
// It panics if channels have different lengths or in length is not N*L.
func Deinterleave[T audiostream.Sample](in []T, channels [][]T) {
	validate(channels, len(in))
	n := len(channels)
	for c := range channels {
		for j := range channels[c] {
			channels[c][j] = in[j*n+c]
		}
	}
}

// Int16 interleaves channels with the default kernel.
func Int16(channels [][]int16, out []int16) {
	validate(channels, len(out))
	interleave(Default(), channels, out)
}

func validate[T audiostream.Sample](channels [][]T, size int) {
	if len(channels) == 0 {
		if size != 0 {
			panic(fmt.Sprintf("interleave: no channels for %d samples", size))
		}
		return
	}
	l := len(channels[0])
	for c := range channels {
		if len(channels[c]) != l {
			panic(fmt.Sprintf("interleave: channel %d has %d samples, expected %d", c, len(channels[c]), l))
		}
	}
	if size != len(channels)*l {
		panic(fmt.Sprintf("interleave: %d samples for %d channels of %d samples", size, len(channels), l))
	}
}

func generic[T audiostream.Sample](channels [][]T, out []T) {
	n := len(channels)
	for c := range channels {
		for j, v := range channels[c] {
			out[j*n+c] = v
		}
	}
}

func interleave(k Kernel, channels [][]int16, out []int16) {
	if k == Generic || len(channels) != 2 {
		generic(channels, out)
		return
	}
	a, b := channels[0], channels[1]
	n := len(a) - len(a)%k.Chunk()
	if n > 0 {
		zip(k, out[:2*n], a[:n], b[:n])
	}
	for j := n; j < len(a); j++ {
		out[2*j] = a[j]
		out[2*j+1] = b[j]
	}
}
