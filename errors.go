package flowbuf

import (
	"errors"
	"fmt"
)

var (
	// ErrNotWritable indicates a write on a stream marked non-writable.
	ErrNotWritable = errors.New("flowbuf: stream not writable")
	// ErrAlreadyEnded indicates a write or end on a stream that has already ended.
	ErrAlreadyEnded = errors.New("flowbuf: stream already ended")
	// ErrUnknownEncoding indicates an encoding name the codec does not recognize.
	ErrUnknownEncoding = errors.New("flowbuf: unknown encoding")
	// ErrInvalidData indicates input that could not be decoded from its declared encoding.
	ErrInvalidData = errors.New("flowbuf: invalid encoded data")
	// ErrUpstream wraps an error forwarded from a piped source.
	ErrUpstream = errors.New("flowbuf: upstream error")
	// ErrDownstream wraps an error forwarded from a piped destination.
	ErrDownstream = errors.New("flowbuf: downstream error")
	// ErrInternal indicates an invariant violation in the delivery scheduler.
	// A stream that reports it stops scheduling further deliveries.
	ErrInternal = errors.New("flowbuf: internal consistency fault")
)

type errUpstream struct {
	cause error
}

func (e *errUpstream) Error() string {
	if e.cause != nil {
		return e.cause.Error()
	}
	return ErrUpstream.Error()
}

func (e *errUpstream) Unwrap() error {
	return fmt.Errorf("%w: %w", ErrUpstream, e.cause)
}

func newErrUpstream(err error) error {
	return &errUpstream{cause: err}
}

type errDownstream struct {
	cause error
}

func (e *errDownstream) Error() string {
	if e.cause != nil {
		return e.cause.Error()
	}
	return ErrDownstream.Error()
}

func (e *errDownstream) Unwrap() error {
	return fmt.Errorf("%w: %w", ErrDownstream, e.cause)
}

func newErrDownstream(err error) error {
	return &errDownstream{cause: err}
}
