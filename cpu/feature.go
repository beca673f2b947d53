// Package cpu detects the capabilities of the processor and allows to
// override them with environment variable.
//
// Features are ordered per architecture, Baseline is always supported. The
// default detector is built once per process, the result never changes
// afterwards.
package cpu

import (
	"fmt"
	"strings"
)

// Feature is a processor capability. The set of features depends on the
// architecture.
type Feature uint8

// Baseline is supported by every processor.
const Baseline Feature = 0

// Set is a set of features.
type Set uint32

// SetOf returns a set with provided features.
func SetOf(features ...Feature) Set {
	var s Set
	for _, f := range features {
		s = s.With(f)
	}
	return s
}

// Has returns true if feature is in the set.
func (s Set) Has(f Feature) bool {
	return s&(1<<f) != 0
}

// With returns a copy of the set with feature added.
func (s Set) With(f Feature) Set {
	return s | 1<<f
}

// Features returns all features of the current architecture in the order
// of their definition.
func Features() []Feature {
	features := make([]Feature, len(names))
	for i := range names {
		features[i] = Feature(i)
	}
	return features
}

// Lookup returns a feature by its name. Names are case-insensitive.
func Lookup(name string) (Feature, bool) {
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return Feature(i), true
		}
	}
	return 0, false
}

func (f Feature) String() string {
	if int(f) < len(names) {
		return names[f]
	}
	return fmt.Sprintf("feature(%d)", uint8(f))
}
