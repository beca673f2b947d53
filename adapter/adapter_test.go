package adapter_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"pipelined.dev/audiostream"
	"pipelined.dev/audiostream/adapter"
	"pipelined.dev/audiostream/mock"
)

func TestCopyChannel(t *testing.T) {
	testCopy := func(buffers []audiostream.Buffer[int16], from, to int, expected audiostream.Buffer[int16]) func(*testing.T) {
		return func(t *testing.T) {
			stage := adapter.CopyChannel[int16](&mock.Buffers[int16]{Buffers: buffers}, from, to)
			b, _, err := audiostream.Collect[int16](stage)
			assert.Nil(t, err)
			assert.Equal(t, expected, b)
		}
	}
	t.Run("append", testCopy(
		[]audiostream.Buffer[int16]{{{5, 6, 7}}},
		0, 1,
		audiostream.Buffer[int16]{{5, 6, 7}, {5, 6, 7}},
	))
	t.Run("overwrite", testCopy(
		[]audiostream.Buffer[int16]{{{1, 2}, {3, 4}}, {{5}, {6}}},
		1, 0,
		audiostream.Buffer[int16]{{3, 4, 6}, {3, 4, 6}},
	))
	t.Run("same", testCopy(
		[]audiostream.Buffer[int16]{{{1, 2}, {3, 4}}},
		1, 1,
		audiostream.Buffer[int16]{{1, 2}, {3, 4}},
	))
}

func TestCopyChannelOwnsStorage(t *testing.T) {
	stage := adapter.CopyChannel[int16](audiostream.Adapt[int16](&mock.MonoSource[int16]{
		Buffers: [][]int16{{5, 6, 7}},
	}), 0, 1)
	r := stage.Next()
	assert.Equal(t, audiostream.Buffer[int16]{{5, 6, 7}, {5, 6, 7}}, r.Buffer)
	r.Buffer[1][0] = 42
	assert.Equal(t, int16(5), r.Buffer[0][0])
	assert.Equal(t, audiostream.KindEndOfStream, stage.Next().Kind)
	assert.Equal(t, audiostream.KindEndOfStream, stage.Next().Kind)
}

func TestCopyChannelPanics(t *testing.T) {
	source := func() audiostream.Source[int8] {
		return &mock.Buffers[int8]{Buffers: []audiostream.Buffer[int8]{{{1}}}}
	}
	assert.Panics(t, func() { adapter.CopyChannel[int8](source(), -1, 0) })
	assert.Panics(t, func() { adapter.CopyChannel[int8](source(), 1, 0).Next() })
	assert.Panics(t, func() { adapter.CopyChannel[int8](source(), 0, 2).Next() })
}

func TestAmplify(t *testing.T) {
	t.Run("identity", func(t *testing.T) {
		b := audiostream.Buffer[int16]{{math.MinInt16, -1, 0, 1, math.MaxInt16}}
		stage := adapter.Amplify[int16](&mock.Buffers[int16]{Buffers: []audiostream.Buffer[int16]{b}}, 1.0)
		out, _, err := audiostream.Collect[int16](stage)
		assert.Nil(t, err)
		assert.Equal(t, b, out)
	})
	t.Run("clips hard", func(t *testing.T) {
		stage := adapter.Amplify[int8](&mock.Buffers[int8]{Buffers: []audiostream.Buffer[int8]{
			{{100, -100, 10}},
		}}, 2.0)
		out, _, err := audiostream.Collect[int8](stage)
		assert.Nil(t, err)
		assert.Equal(t, audiostream.Buffer[int8]{{math.MaxInt8, math.MinInt8, 20}}, out)
	})
	t.Run("float64", func(t *testing.T) {
		stage := adapter.Amplify[float64](&mock.Buffers[float64]{Buffers: []audiostream.Buffer[float64]{
			{{0.5, -0.25}, {1, 2}},
		}}, 3)
		out, _, err := audiostream.Collect[float64](stage)
		assert.Nil(t, err)
		assert.Equal(t, audiostream.Buffer[float64]{{1.5, -0.75}, {3, 6}}, out)
	})
	t.Run("float32 soft", func(t *testing.T) {
		stage := adapter.Amplify[float32](&mock.Buffers[float32]{Buffers: []audiostream.Buffer[float32]{
			{{0.75}},
		}}, 2)
		out, _, err := audiostream.Collect[float32](stage)
		assert.Nil(t, err)
		assert.Equal(t, audiostream.Buffer[float32]{{1.5}}, out)
	})
	t.Run("error is sticky", func(t *testing.T) {
		errMock := errors.New("mock")
		source := &mock.Source[int16]{ErrorOnCall: errMock}
		stage := adapter.Amplify[int16](source, 0.5)
		assert.ErrorIs(t, stage.Next().Err, errMock)
		source.ErrorOnCall = nil
		assert.ErrorIs(t, stage.Next().Err, errMock)
	})
}

func TestMix(t *testing.T) {
	t.Run("saturates", func(t *testing.T) {
		m := adapter.Mix[int16](
			&mock.MonoSource[int16]{Buffers: [][]int16{{math.MaxInt16, math.MinInt16, 1}}},
			&mock.MonoSource[int16]{Buffers: [][]int16{{1, -1, 2}}},
		)
		b, ok := m.Next()
		assert.True(t, ok)
		assert.Equal(t, []int16{math.MaxInt16, math.MinInt16, 3}, b)
		_, ok = m.Next()
		assert.False(t, ok)
	})
	t.Run("shortest ends", func(t *testing.T) {
		m := adapter.Mix[float64](
			&mock.MonoSource[float64]{Buffers: [][]float64{{0.25}, {0.5}}},
			&mock.MonoSource[float64]{Buffers: [][]float64{{0.5}}},
		)
		b, _, err := audiostream.Collect[float64](audiostream.Adapt[float64](m))
		assert.Nil(t, err)
		assert.Equal(t, audiostream.Buffer[float64]{{0.75}}, b)
		_, ok := m.Next()
		assert.False(t, ok)
	})
	t.Run("length mismatch", func(t *testing.T) {
		m := adapter.Mix[int8](
			&mock.MonoSource[int8]{Buffers: [][]int8{{1, 2}}},
			&mock.MonoSource[int8]{Buffers: [][]int8{{1}}},
		)
		assert.Panics(t, func() { m.Next() })
	})
	t.Run("inputs untouched", func(t *testing.T) {
		a := audiostream.NewUninitialized[int32](2)
		buf, _ := a.Next()
		buf[0], buf[1] = 1, 2
		m := adapter.Mix[int32](a, &mock.MonoSource[int32]{Buffers: [][]int32{{10, 20}}})
		b, _ := m.Next()
		assert.Equal(t, []int32{11, 22}, b)
		assert.Equal(t, []int32{1, 2}, buf)
	})
}

// doubler is a mono filter that doubles every sample of its input.
type doubler struct {
	input audiostream.MonoSource[int16]
	out   []int16
}

func (d *doubler) Next() ([]int16, bool) {
	b, ok := d.input.Next()
	if !ok {
		return nil, false
	}
	d.out = d.out[:0]
	for _, v := range b {
		d.out = append(d.out, audiostream.Mix(v, v))
	}
	return d.out, true
}

func TestMonoFilter(t *testing.T) {
	var built int
	build := func(channel audiostream.MonoSource[int16]) audiostream.MonoSource[int16] {
		built++
		return &doubler{input: channel}
	}
	stage := adapter.MonoFilter[int16](&mock.Buffers[int16]{Buffers: []audiostream.Buffer[int16]{
		{{1, 2}, {3, 4}},
		{{5}, {math.MaxInt16}},
	}}, build)
	b, _, err := audiostream.Collect[int16](stage)
	assert.Nil(t, err)
	assert.Equal(t, audiostream.Buffer[int16]{{2, 4, 10}, {6, 8, math.MaxInt16}}, b)
	assert.Equal(t, 2, built)

	stage = adapter.MonoFilter[int16](&mock.Buffers[int16]{Buffers: []audiostream.Buffer[int16]{
		{{1}}, {{1}, {2}},
	}}, build)
	_, _, err = audiostream.Collect[int16](stage)
	assert.ErrorIs(t, err, audiostream.ErrChannelCount)
	assert.Equal(t, audiostream.KindError, stage.Next().Kind)
}

func TestMonoFilterEnds(t *testing.T) {
	// filter that produces only one buffer.
	build := func(channel audiostream.MonoSource[float32]) audiostream.MonoSource[float32] {
		var done bool
		return audiostream.MonoSourceFunc[float32](func() ([]float32, bool) {
			if done {
				return nil, false
			}
			done = true
			return channel.Next()
		})
	}
	stage := adapter.MonoFilter[float32](&mock.Source[float32]{Limit: 10, BufferSize: 2, Channels: 2, Value: 0.5}, build)
	b, sampleRate, err := audiostream.Collect[float32](stage)
	assert.Nil(t, err)
	assert.Equal(t, 44100, sampleRate)
	assert.Equal(t, audiostream.Buffer[float32]{{0.5, 0.5}, {0.5, 0.5}}, b)
}
