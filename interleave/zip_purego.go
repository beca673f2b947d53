//go:build purego || !(amd64 || arm64)

package interleave

import "pipelined.dev/audiostream/cpu"

func kernelFor(cpu.Feature) Kernel {
	return Generic
}

func kernels(*cpu.Detector) []Kernel {
	return []Kernel{Generic}
}

func zip(Kernel, []int16, []int16, []int16) {}
