//go:build !purego

package interleave

import "pipelined.dev/audiostream/cpu"

func kernelFor(f cpu.Feature) Kernel {
	if f == cpu.NEON {
		return NEON
	}
	return Generic
}

func kernels(d *cpu.Detector) []Kernel {
	if d.Supports(cpu.NEON) {
		return []Kernel{Generic, NEON}
	}
	return []Kernel{Generic}
}

// zip interleaves a and b into dst. Length of a must be a multiple of the
// kernel chunk.
func zip(k Kernel, dst, a, b []int16) {
	if k == NEON {
		zip16NEON(dst, a, b)
	}
}

//go:noescape
func zip16NEON(dst, a, b []int16)
