package cpu

import "golang.org/x/sys/cpu"

func hardware() Set {
	s := SetOf(Baseline)
	if cpu.ARM64.HasASIMD {
		s = s.With(NEON)
	}
	return s
}
