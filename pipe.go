package flowbuf

// Readable is the source side of a pipe relation: anything that
// delivers data, end, and error signals. *Stream satisfies it.
type Readable interface {
	OnData(fn func(Chunk))
	OnEnd(fn func())
	OnError(fn func(error))
}

// Destination is the write side of a pipe relation: anything that
// accepts writes with a backpressure advisory and an end-of-stream
// signal. *Stream satisfies it.
type Destination interface {
	Write(p []byte) (bool, error)
	End() error
}

// Suspender is optionally implemented by a Readable that supports
// flow control. A pipe uses it to propagate backpressure upstream.
type Suspender interface {
	Pause()
	Resume()
}

// DrainNotifier is optionally implemented by a Destination that
// signals when its buffer has drained below its maximum. A pipe uses
// it to resume a source it paused for backpressure.
type DrainNotifier interface {
	OnDrain(fn func())
}

// ErrorNotifier is optionally implemented by a Destination that emits
// its own error signal.
type ErrorNotifier interface {
	OnError(fn func(error))
}

// Pipe connects the stream as a source feeding dst. Every delivered
// chunk is forwarded as a write of its canonical bytes, and the
// terminal signal ends the destination.
//
// If dst reports backpressure the stream pauses itself, resuming when
// dst signals drain (if it can). Errors returned by dst, or emitted by
// it, are re-emitted as this stream's own error signal wrapped in
// ErrDownstream; they are never raised synchronously from a delivery
// callback.
//
// Neither side takes ownership of the other's buffer; a pipe is only a
// set of registered listeners.
func (s *Stream) Pipe(dst Destination) {
	s.OnData(func(c Chunk) {
		ok, err := dst.Write(c.Bytes())
		if err != nil {
			s.emitError(newErrDownstream(err))
			return
		}
		if !ok {
			s.Pause()
		}
	})
	s.OnEnd(func() {
		if err := dst.End(); err != nil {
			s.emitError(newErrDownstream(err))
		}
	})
	if dn, ok := dst.(DrainNotifier); ok {
		dn.OnDrain(s.Resume)
	}
	if en, ok := dst.(ErrorNotifier); ok {
		en.OnError(func(err error) {
			s.emitError(newErrDownstream(err))
		})
	}
}

// pipeFrom connects the stream as the destination of src, relaying the
// source's chunks as its own writes and the source's end as its own
// End. Source errors, and any write rejection on this side, surface
// through this stream's error signal wrapped in ErrUpstream. If the
// source supports flow control it is paused while this stream is full
// and resumed on drain.
func (s *Stream) pipeFrom(src Readable) {
	suspender, _ := src.(Suspender)
	src.OnData(func(c Chunk) {
		ok, err := s.Write(c.Bytes())
		if err != nil {
			s.emitError(newErrUpstream(err))
			return
		}
		if !ok && suspender != nil {
			suspender.Pause()
		}
	})
	src.OnEnd(func() {
		if err := s.End(); err != nil {
			s.emitError(newErrUpstream(err))
		}
	})
	src.OnError(func(err error) {
		s.emitError(newErrUpstream(err))
	})
	if suspender != nil {
		s.OnDrain(suspender.Resume)
	}
}
