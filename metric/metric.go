// Package metric measures pipeline stages. Counters are published with
// expvar and aggregated per stage type.
package metric

import (
	"expvar"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"pipelined.dev/audiostream"
)

const stagesLabel = "audiostream.stages"

const (
	// MessageCounter measures number of buffers.
	MessageCounter = "Messages"
	// SampleCounter measures number of frames.
	SampleCounter = "Samples"
	// LatencyCounter measures latency between pulls.
	LatencyCounter = "Latency"
	// DurationCounter measures duration of the signal.
	DurationCounter = "Duration"
	// StageCounter counts number of measured stages.
	StageCounter = "Stages"
)

var (
	stages = metrics{
		m: make(map[string]metric),
	}

	counters = []string{
		MessageCounter,
		SampleCounter,
		LatencyCounter,
		DurationCounter,
		StageCounter,
	}
)

// Get metrics values for provided stage type.
func Get(stage any) map[string]string {
	return getCounters(getType(stage))
}

// GetAll returns counters for all measured stages.
func GetAll() map[string]map[string]string {
	m := make(map[string]map[string]string)
	stages.Lock()
	defer stages.Unlock()
	for stage := range stages.m {
		m[stage] = getCounters(stage)
	}
	return m
}

func getCounters(stageType string) map[string]string {
	m := make(map[string]string)
	for _, counter := range counters {
		v := expvar.Get(key(stageType, counter))
		if v != nil {
			m[counter] = v.String()
		}
	}
	return m
}

// Source measures every pull of the wrapped source. Counters are
// aggregated under the type of the wrapped source.
type Source[T audiostream.Sample] struct {
	source     audiostream.Source[T]
	metric     metric
	sampleRate int
	calledAt   time.Time
}

// Measure returns a source that measures s.
func Measure[T audiostream.Sample](s audiostream.Source[T]) *Source[T] {
	m := stages.get(getType(s))
	m.stages.Add(1)
	return &Source[T]{
		source: s,
		metric: m,
	}
}

// Next pulls the wrapped source and captures counters.
func (s *Source[T]) Next() audiostream.Result[T] {
	if s.calledAt.IsZero() {
		s.calledAt = time.Now()
	}
	r := s.source.Next()
	switch r.Kind {
	case audiostream.KindSampleRate:
		s.sampleRate = r.SampleRate
	case audiostream.KindBuffer:
		s.metric.latency.set(time.Since(s.calledAt))
		s.metric.messages.Add(1)
		frames := r.Buffer.Len()
		s.metric.samples.Add(int64(frames))
		if s.sampleRate > 0 {
			s.metric.duration.add(durationOf(s.sampleRate, frames))
		}
		s.calledAt = time.Now()
	}
	return r
}

func durationOf(sampleRate, frames int) time.Duration {
	return time.Duration(frames) * time.Second / time.Duration(sampleRate)
}

type metrics struct {
	sync.Mutex
	m map[string]metric
}

func (m *metrics) get(stageType string) metric {
	m.Lock()
	defer m.Unlock()
	if metric, ok := m.m[stageType]; ok {
		return metric
	}
	metric := newMetric(stageType)
	m.m[stageType] = metric
	return metric
}

type metric struct {
	stages   *expvar.Int
	messages *expvar.Int
	samples  *expvar.Int
	latency  *duration
	duration *duration
}

func newMetric(stageType string) metric {
	m := metric{
		stages:   expvar.NewInt(key(stageType, StageCounter)),
		messages: expvar.NewInt(key(stageType, MessageCounter)),
		samples:  expvar.NewInt(key(stageType, SampleCounter)),
		latency:  &duration{},
		duration: &duration{},
	}
	expvar.Publish(key(stageType, LatencyCounter), m.latency)
	expvar.Publish(key(stageType, DurationCounter), m.duration)
	return m
}

func key(stageType, counter string) string {
	return fmt.Sprintf("%s.%s.%s", stagesLabel, stageType, counter)
}

func getType(stage any) string {
	rv := reflect.ValueOf(stage)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	return rv.Type().String()
}

// duration allows to format time.Duration metric values.
type duration struct {
	d atomic.Int64
}

func (v *duration) String() string {
	return fmt.Sprintf("%q", time.Duration(v.d.Load()).String())
}

func (v *duration) add(delta time.Duration) {
	v.d.Add(int64(delta))
}

func (v *duration) set(value time.Duration) {
	v.d.Store(int64(value))
}
