//go:build !purego

package interleave

import "pipelined.dev/audiostream/cpu"

func kernelFor(f cpu.Feature) Kernel {
	switch f {
	case cpu.AVX2:
		return AVX2
	case cpu.AVX:
		return AVX
	}
	return Generic
}

func kernels(d *cpu.Detector) []Kernel {
	k := []Kernel{Generic}
	if d.Supports(cpu.AVX) {
		k = append(k, AVX)
	}
	if d.Supports(cpu.AVX2) {
		k = append(k, AVX2)
	}
	return k
}

// zip interleaves a and b into dst. Length of a must be a multiple of the
// kernel chunk.
func zip(k Kernel, dst, a, b []int16) {
	switch k {
	case AVX:
		zip16AVX(dst, a, b)
	case AVX2:
		zip16AVX2(dst, a, b)
	}
}

//go:noescape
func zip16AVX(dst, a, b []int16)

//go:noescape
func zip16AVX2(dst, a, b []int16)
