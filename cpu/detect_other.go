//go:build !amd64 && !arm64

package cpu

func hardware() Set {
	return SetOf(Baseline)
}
