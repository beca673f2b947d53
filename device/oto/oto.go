// Package oto plays pipelines with oto. Only one oto context can exist in a
// process, so all devices must share the same format.
package oto

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/go-audio/audio"

	"pipelined.dev/audiostream"
	"pipelined.dev/audiostream/device"
)

// ErrContextFormat is returned when device is opened with the format that
// differs from the process-wide context.
var ErrContextFormat = errors.New("oto context has different format")

// drainInterval is how often Close checks if the player is done.
const drainInterval = 10 * time.Millisecond

type player interface {
	Play()
	IsPlaying() bool
	Close() error
}

var shared = struct {
	sync.Mutex
	ctx     *oto.Context
	options oto.NewContextOptions
}{}

// newPlayer returns a player that reads samples from r.
var newPlayer = func(options oto.NewContextOptions, r io.Reader) (player, error) {
	shared.Lock()
	defer shared.Unlock()
	if shared.ctx == nil {
		ctx, ready, err := oto.NewContext(&options)
		if err != nil {
			return nil, err
		}
		<-ready
		shared.ctx, shared.options = ctx, options
	} else if shared.options.SampleRate != options.SampleRate ||
		shared.options.ChannelCount != options.ChannelCount ||
		shared.options.Format != options.Format {
		return nil, ErrContextFormat
	}
	return shared.ctx.NewPlayer(r), nil
}

// Device streams encoded samples to oto player through a pipe. Play blocks
// until the player consumes the samples.
type Device[T audiostream.Sample] struct {
	player  player
	writer  *io.PipeWriter
	encoded []byte
}

// Open returns a playing device of provided format. Supported sample types
// are int8, int16 and float32, device.ErrFormat is returned for any other.
func Open[T audiostream.Sample](format audio.Format) (*Device[T], error) {
	f, err := sampleFormat[T]()
	if err != nil {
		return nil, err
	}
	r, w := io.Pipe()
	p, err := newPlayer(oto.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: format.NumChannels,
		Format:       f,
	}, r)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("oto: new player: %w", err)
	}
	p.Play()
	return &Device[T]{
		player: p,
		writer: w,
	}, nil
}

func sampleFormat[T audiostream.Sample]() (oto.Format, error) {
	var v T
	switch any(v).(type) {
	case int8:
		return oto.FormatUnsignedInt8, nil
	case int16:
		return oto.FormatSignedInt16LE, nil
	case float32:
		return oto.FormatFloat32LE, nil
	}
	return 0, fmt.Errorf("oto: %w: %T", device.ErrFormat, v)
}

// Play encodes samples and writes them to the player.
func (d *Device[T]) Play(interleaved []T) error {
	d.encoded = encode(d.encoded[:0], interleaved)
	_, err := d.writer.Write(d.encoded)
	return err
}

// Close waits until the player plays all samples and closes it.
func (d *Device[T]) Close() error {
	if err := d.writer.Close(); err != nil {
		return err
	}
	for d.player.IsPlaying() {
		time.Sleep(drainInterval)
	}
	return d.player.Close()
}

// encode appends samples to dst in oto format: unsigned 8-bit, signed
// 16-bit little-endian or 32-bit float little-endian.
func encode[T audiostream.Sample](dst []byte, samples []T) []byte {
	switch s := any(samples).(type) {
	case []int8:
		for _, v := range s {
			dst = append(dst, byte(int16(v)+128))
		}
	case []int16:
		for _, v := range s {
			dst = binary.LittleEndian.AppendUint16(dst, uint16(v))
		}
	case []float32:
		for _, v := range s {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
		}
	}
	return dst
}
