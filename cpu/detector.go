package cpu

import (
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"pipelined.dev/audiostream/log"
)

// Env is the environment variable with feature overrides.
const Env = "AUDIOSTREAM_CPU_FEATURES"

var logger logrus.FieldLogger = log.Component("cpu")

// Overrides are features forced to be enabled or disabled regardless of
// hardware.
type Overrides struct {
	Enabled  Set
	Disabled Set
}

// ParseOverrides parses comma-separated list of tokens. Every token is a
// feature name prefixed with + to enable or - to disable it. Invalid tokens
// are skipped with a warning.
func ParseOverrides(s string) Overrides {
	var o Overrides
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if len(token) < 2 || (token[0] != '+' && token[0] != '-') {
			logger.WithField("token", token).Warn("skipping cpu feature override without +/- prefix")
			continue
		}
		f, ok := Lookup(token[1:])
		if !ok {
			logger.WithField("token", token).Warn("skipping unknown cpu feature override")
			continue
		}
		if token[0] == '+' {
			o.Enabled = o.Enabled.With(f)
		} else {
			o.Disabled = o.Disabled.With(f)
		}
	}
	return o
}

// Detector answers whether features are supported. It's immutable and safe
// for concurrent use.
type Detector struct {
	overrides Overrides
	hardware  Set
}

// NewDetector returns detector with provided overrides on top of hardware
// features.
func NewDetector(overrides Overrides, hardware Set) *Detector {
	return &Detector{
		overrides: overrides,
		hardware:  hardware,
	}
}

// Hardware returns features reported by the processor.
func Hardware() Set {
	return hardware()
}

var defaultDetector = sync.OnceValue(func() *Detector {
	return NewDetector(ParseOverrides(os.Getenv(Env)), hardware())
})

// Default returns the process-wide detector. It's built on the first call
// from hardware features and overrides in Env variable.
func Default() *Detector {
	return defaultDetector()
}

// Supports returns true if feature is enabled. Forced enabled features win
// over disabled, the rest is decided by hardware.
func (d *Detector) Supports(f Feature) bool {
	switch {
	case f == Baseline:
		return true
	case d.overrides.Enabled.Has(f):
		return true
	case d.overrides.Disabled.Has(f):
		return false
	}
	return d.hardware.Has(f)
}

// Best returns the strongest supported feature tier.
func (d *Detector) Best() Feature {
	for _, f := range tiers {
		if d.Supports(f) {
			logger.WithField("feature", f).Debug("selected cpu feature tier")
			return f
		}
	}
	return Baseline
}
