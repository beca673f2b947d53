package cpu

import "golang.org/x/sys/cpu"

func hardware() Set {
	s := SetOf(Baseline)
	// every amd64 processor has these.
	s = s.With(MMX).With(SSE).With(SSE2)
	add := func(f Feature, ok bool) {
		if ok {
			s = s.With(f)
		}
	}
	add(SSE3, cpu.X86.HasSSE3)
	add(SSSE3, cpu.X86.HasSSSE3)
	add(SSE41, cpu.X86.HasSSE41)
	add(SSE42, cpu.X86.HasSSE42)
	add(OSXSAVE, cpu.X86.HasOSXSAVE)
	// x/sys/cpu reports AVX only if the OS saves the ymm state.
	avx := cpu.X86.HasAVX && cpu.X86.HasOSXSAVE
	add(AVX, avx)
	add(AVX2, avx && cpu.X86.HasAVX2)
	return s
}
