package audiostream

import (
	"errors"
	"fmt"
)

// Kind defines what a Result carries.
type Kind uint8

const (
	// KindBuffer is a result with a buffer of samples.
	KindBuffer Kind = iota
	// KindSampleRate announces the sample rate of subsequent buffers.
	KindSampleRate
	// KindEndOfStream means no more buffers will ever be produced.
	KindEndOfStream
	// KindError is a stream fault.
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindBuffer:
		return "buffer"
	case KindSampleRate:
		return "sample rate"
	case KindEndOfStream:
		return "end of stream"
	case KindError:
		return "error"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

type (
	// Result is the outcome of a single pull.
	Result[T Sample] struct {
		Kind       Kind
		Buffer     Buffer[T]
		SampleRate int
		Err        error
	}

	// Source is a producer of multi-channel buffers. The buffer returned by
	// Next is valid until the next call of Next on the same source.
	// Implementations are allowed to reuse the same storage for every
	// buffer. After end of stream or error, the same terminal result should
	// be returned for all subsequent calls.
	Source[T Sample] interface {
		Next() Result[T]
	}

	// MonoSource is a producer of single-channel buffers. Next returns false
	// if there is no more data. The returned slice is valid until the next
	// call of Next.
	MonoSource[T Sample] interface {
		Next() ([]T, bool)
	}

	// SourceFunc allows to use an ordinary function as a Source.
	SourceFunc[T Sample] func() Result[T]

	// MonoSourceFunc allows to use an ordinary function as a MonoSource.
	MonoSourceFunc[T Sample] func() ([]T, bool)
)

// Next calls fn.
func (fn SourceFunc[T]) Next() Result[T] {
	return fn()
}

// Next calls fn.
func (fn MonoSourceFunc[T]) Next() ([]T, bool) {
	return fn()
}

// Emit returns a buffer result.
func Emit[T Sample](b Buffer[T]) Result[T] {
	return Result[T]{
		Kind:   KindBuffer,
		Buffer: b,
	}
}

// Rate returns a sample rate announcement.
func Rate[T Sample](sampleRate int) Result[T] {
	return Result[T]{
		Kind:       KindSampleRate,
		SampleRate: sampleRate,
	}
}

// EndOfStream returns the end of stream result.
func EndOfStream[T Sample]() Result[T] {
	return Result[T]{
		Kind: KindEndOfStream,
	}
}

// Fail returns a stream error result. If err is not a StreamError, it's
// wrapped into one.
func Fail[T Sample](err error) Result[T] {
	var se *StreamError
	if !errors.As(err, &se) {
		err = NewStreamError("", err)
	}
	return Result[T]{
		Kind: KindError,
		Err:  err,
	}
}

// Terminal returns true for end of stream and errors.
func (r Result[T]) Terminal() bool {
	return r.Kind == KindEndOfStream || r.Kind == KindError
}

// Sticky remembers the first terminal result of a stream. Stages embed it
// to keep returning the same terminal result once the upstream is done.
type Sticky[T Sample] struct {
	result Result[T]
	done   bool
}

// Keep the result if it's terminal. The result is returned unchanged.
func (s *Sticky[T]) Keep(r Result[T]) Result[T] {
	if !s.done && r.Terminal() {
		s.result, s.done = r, true
	}
	return r
}

// Result returns the remembered terminal result.
func (s *Sticky[T]) Result() (Result[T], bool) {
	return s.result, s.done
}

// MonoAdapter lifts a MonoSource into a Source. Every mono buffer is
// re-described as a single-channel buffer without copying samples.
type MonoAdapter[T Sample] struct {
	source MonoSource[T]
	view   [1][]T
	done   bool
}

// Adapt returns a source that wraps every buffer of m as a single-channel
// buffer.
func Adapt[T Sample](m MonoSource[T]) *MonoAdapter[T] {
	return &MonoAdapter[T]{
		source: m,
	}
}

// Next pulls the mono source.
func (a *MonoAdapter[T]) Next() Result[T] {
	if a.done {
		return EndOfStream[T]()
	}
	b, ok := a.source.Next()
	if !ok {
		a.done = true
		a.view[0] = nil
		return EndOfStream[T]()
	}
	a.view[0] = b
	return Emit(Buffer[T](a.view[:]))
}

// Uninitialized is a mono source that returns the same buffer on every
// pull, without any guarantees about its content. It's useful for building
// custom sources.
type Uninitialized[T Sample] struct {
	buffer []T
}

// NewUninitialized returns a source of buffers with size samples.
func NewUninitialized[T Sample](size int) *Uninitialized[T] {
	return &Uninitialized[T]{
		buffer: make([]T, size),
	}
}

// Next returns the buffer.
func (u *Uninitialized[T]) Next() ([]T, bool) {
	return u.buffer, true
}

// Drain pulls the source until the end of stream and calls fn for every
// buffer with the last announced sample rate. The buffer is only valid during
// the call. The stream error is returned if the source fails, or the error of
// fn if it's not nil.
func Drain[T Sample](s Source[T], fn func(b Buffer[T], sampleRate int) error) error {
	var sampleRate int
	for {
		r := s.Next()
		switch r.Kind {
		case KindBuffer:
			if err := fn(r.Buffer, sampleRate); err != nil {
				return err
			}
		case KindSampleRate:
			sampleRate = r.SampleRate
		case KindEndOfStream:
			return nil
		case KindError:
			return r.Err
		}
	}
}

// Collect pulls the source until the end of stream and returns a copy of all
// produced samples along with the last announced sample rate. The stream
// error is returned if the source fails.
func Collect[T Sample](s Source[T]) (Buffer[T], int, error) {
	var (
		b          Buffer[T]
		sampleRate int
	)
	for {
		r := s.Next()
		switch r.Kind {
		case KindBuffer:
			if b != nil && b.Channels() != r.Buffer.Channels() {
				return b, sampleRate, fmt.Errorf("%w: %d to %d", ErrChannelCount, b.Channels(), r.Buffer.Channels())
			}
			b = b.Append(r.Buffer)
		case KindSampleRate:
			sampleRate = r.SampleRate
		case KindEndOfStream:
			return b, sampleRate, nil
		case KindError:
			return b, sampleRate, r.Err
		}
	}
}
