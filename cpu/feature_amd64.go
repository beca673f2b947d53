package cpu

// Features of amd64 processors.
const (
	MMX Feature = iota + 1
	SSE
	SSE2
	SSE3
	SSSE3
	SSE41
	SSE42
	OSXSAVE
	AVX
	AVX2
)

var names = []string{
	Baseline: "Baseline",
	MMX:      "MMX",
	SSE:      "SSE",
	SSE2:     "SSE2",
	SSE3:     "SSE3",
	SSSE3:    "SSSE3",
	SSE41:    "SSE41",
	SSE42:    "SSE42",
	OSXSAVE:  "OSXSAVE",
	AVX:      "AVX",
	AVX2:     "AVX2",
}

// tiers are ordered from the strongest.
var tiers = []Feature{AVX2, AVX, SSE42, SSE41, SSSE3, SSE3, SSE2, SSE, MMX, Baseline}
