package audiostream

import "fmt"

// Buffer is a channel-major buffer: every channel is a contiguous run of
// samples. All channels have the same length.
type Buffer[T Sample] [][]T

// MakeBuffer returns a buffer of provided dimensions. All channels share a
// single backing array.
func MakeBuffer[T Sample](channels, length int) Buffer[T] {
	data := make([]T, channels*length)
	b := make(Buffer[T], channels)
	for i := range b {
		b[i] = data[i*length : (i+1)*length : (i+1)*length]
	}
	return b
}

// Channels returns number of channels in the buffer.
func (b Buffer[T]) Channels() int {
	return len(b)
}

// Len returns number of samples in a single channel.
func (b Buffer[T]) Len() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

// Size returns total number of samples in the buffer.
func (b Buffer[T]) Size() int {
	return b.Channels() * b.Len()
}

// At returns the sample at channel-major index i: all samples of channel 0
// come first, then all samples of channel 1 and so on.
func (b Buffer[T]) At(i int) T {
	l := b.Len()
	return b[i/l][i%l]
}

// Validate checks that buffer has at least one channel and all channels
// have the same length.
func (b Buffer[T]) Validate() error {
	if len(b) == 0 {
		return ErrNoChannels
	}
	l := len(b[0])
	for i := range b {
		if len(b[i]) != l {
			return fmt.Errorf("%w: channel %d has %d samples, expected %d", ErrChannelLength, i, len(b[i]), l)
		}
	}
	return nil
}

// Clone returns a deep copy of the buffer.
func (b Buffer[T]) Clone() Buffer[T] {
	if b == nil {
		return nil
	}
	c := MakeBuffer[T](b.Channels(), b.Len())
	for i := range b {
		copy(c[i], b[i])
	}
	return c
}

// Append appends channels of source to the buffer. New buffer is created
// if b is nil.
func (b Buffer[T]) Append(source Buffer[T]) Buffer[T] {
	if b == nil {
		b = make(Buffer[T], source.Channels())
		for i := range b {
			b[i] = make([]T, 0, source.Len())
		}
	}
	for i := range source {
		b[i] = append(b[i], source[i]...)
	}
	return b
}
