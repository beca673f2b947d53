package interleave

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"pipelined.dev/audiostream"
	"pipelined.dev/audiostream/cpu"
)

// Kernel is an implementation of two-channel int16 interleaving.
type Kernel uint8

const (
	// Generic is the scalar implementation, available everywhere.
	Generic Kernel = iota
	// AVX processes 8 frames per step with 128-bit registers.
	AVX
	// AVX2 processes 16 frames per step with 256-bit registers.
	AVX2
	// NEON processes 8 frames per step with 128-bit registers.
	NEON
)

// ErrKernel is returned when kernel is not available on the current
// processor.
var ErrKernel = errors.New("kernel is not available")

func (k Kernel) String() string {
	switch k {
	case Generic:
		return "Generic"
	case AVX:
		return "AVX"
	case AVX2:
		return "AVX2"
	case NEON:
		return "NEON"
	}
	return fmt.Sprintf("kernel(%d)", uint8(k))
}

// Chunk returns number of frames processed by a single step.
func (k Kernel) Chunk() int {
	switch k {
	case AVX, NEON:
		return 8
	case AVX2:
		return 16
	}
	return 1
}

var defaultKernel = sync.OnceValue(func() Kernel {
	return kernelFor(cpu.Default().Best())
})

// Default returns the kernel selected for the current processor.
func Default() Kernel {
	return defaultKernel()
}

// Kernels returns all kernels available on the current processor.
func Kernels() []Kernel {
	return kernels(cpu.Default())
}

// Interleaver interleaves buffers with the kernel chosen at construction.
type Interleaver[T audiostream.Sample] struct {
	kernel Kernel
}

// New returns interleaver with the default kernel.
func New[T audiostream.Sample]() *Interleaver[T] {
	return &Interleaver[T]{
		kernel: Default(),
	}
}

// NewWithKernel returns interleaver with provided kernel. ErrKernel is
// returned if the kernel is not available.
func NewWithKernel[T audiostream.Sample](k Kernel) (*Interleaver[T], error) {
	if !slices.Contains(Kernels(), k) {
		return nil, fmt.Errorf("%w: %v", ErrKernel, k)
	}
	return &Interleaver[T]{
		kernel: k,
	}, nil
}

// Kernel returns the kernel of interleaver.
func (i *Interleaver[T]) Kernel() Kernel {
	return i.kernel
}

// Interleave works as package-level Interleave. Two-channel int16 buffers
// are processed with the interleaver's kernel.
func (i *Interleaver[T]) Interleave(channels [][]T, out []T) {
	validate(channels, len(out))
	if c, ok := any(channels).([][]int16); ok {
		interleave(i.kernel, c, any(out).([]int16))
		return
	}
	generic(channels, out)
}
