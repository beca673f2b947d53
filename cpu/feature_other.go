//go:build !amd64 && !arm64

package cpu

var names = []string{
	Baseline: "Baseline",
}

var tiers = []Feature{Baseline}
