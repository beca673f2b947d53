package cpu

// Features of arm64 processors.
const (
	NEON Feature = iota + 1
)

var names = []string{
	Baseline: "Baseline",
	NEON:     "NEON",
}

var tiers = []Feature{NEON, Baseline}
