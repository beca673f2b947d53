package audiostream

import (
	"errors"
)

var (
	// ErrNoChannels is returned when buffer doesn't have channels.
	ErrNoChannels = errors.New("buffer has no channels")
	// ErrChannelLength is returned when channels of a buffer have different
	// lengths.
	ErrChannelLength = errors.New("channels have different length")
	// ErrChannelCount is returned when number of channels changes between
	// buffers of the same stream.
	ErrChannelCount = errors.New("number of channels changed")
)

// StreamError is a fault reported by a source. It's terminal for the
// source, but the consumer decides whether to abort the pipeline.
type StreamError struct {
	Description string
	Err         error
}

// NewStreamError returns new stream error with provided description.
func NewStreamError(description string, err error) *StreamError {
	return &StreamError{
		Description: description,
		Err:         err,
	}
}

func (e *StreamError) Error() string {
	switch {
	case e.Err == nil:
		return e.Description
	case e.Description == "":
		return e.Err.Error()
	}
	return e.Description + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *StreamError) Unwrap() error {
	return e.Err
}
