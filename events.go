package flowbuf

// Listener registration. Signals are delivered to listeners in
// registration order, on the stream's delivery goroutine, never
// concurrently for one stream. A signal that has already fired is not
// replayed to listeners attached later; buffered data and a pending
// terminal signal, however, are held until a matching listener exists,
// so the first consumer never loses anything by attaching late.

// OnData registers a listener for delivered chunks. The chunk carries
// raw bytes, or encoded text as well when an output encoding is set.
// Data is never delivered while the stream is paused and never after
// the terminal signal.
//
// A stream without data listeners buffers instead of delivering, so
// registration may itself trigger a delivery attempt.
func (s *Stream) OnData(fn func(Chunk)) {
	s.mu.Lock()
	s.onData = append(s.onData, fn)
	s.mu.Unlock()
	s.flush()
}

// OnEnd registers a listener for the terminal signal, which fires at
// most once, strictly after the last data chunk. Like data, the signal
// is held until at least one end listener exists, so registration may
// trigger a delivery attempt.
func (s *Stream) OnEnd(fn func()) {
	s.mu.Lock()
	s.onEnd = append(s.onEnd, fn)
	s.mu.Unlock()
	s.flush()
}

// OnError registers a listener for forwarded and internal errors.
// Errors are always delivered asynchronously, never thrown from the
// call that caused them, and imply nothing about whether the terminal
// signal will follow. An error delivered with no listener registered
// is logged through the stream's logger rather than dropped.
func (s *Stream) OnError(fn func(error)) {
	s.mu.Lock()
	s.onError = append(s.onError, fn)
	s.mu.Unlock()
}

// OnDrain registers a listener fired each time the buffer falls back
// below its configured maximum after having been full. It is the
// signal a backpressured writer waits for before writing again.
func (s *Stream) OnDrain(fn func()) {
	s.mu.Lock()
	s.onDrain = append(s.onDrain, fn)
	s.mu.Unlock()
}
