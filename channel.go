package flowbuf

// Chunks subscribes to a stream and exposes its signals as channels:
// delivered chunks on the first, errors on the second. The chunk
// channel is closed when the terminal signal fires. The error channel
// holds a single error; further errors are dropped once it is full.
//
// Sends block the stream's delivery goroutine until the consumer
// reads, so a slow consumer backpressures the stream naturally. The
// buffer size only softens that coupling.
func Chunks(s *Stream, buffer int) (<-chan Chunk, <-chan error) {
	out := make(chan Chunk, buffer)
	errs := make(chan error, 1)

	s.OnData(func(c Chunk) {
		out <- c
	})
	s.OnEnd(func() {
		close(out)
	})
	s.OnError(func(err error) {
		select {
		case errs <- err:
		default:
		}
	})

	return out, errs
}

// Collect drains a stream to completion and returns its concatenated
// canonical bytes. It blocks until the terminal signal, or returns
// early with the first error signal. The stream is resumed first, so
// collecting a paused stream does not deadlock.
func Collect(s *Stream) ([]byte, error) {
	out, errs := Chunks(s, 16)
	s.Resume()

	var buf []byte
	if s.terminated() {
		// A previous consumer already took the terminal signal; drain
		// whatever this subscription caught and stop.
		for {
			select {
			case c, ok := <-out:
				if !ok {
					return buf, nil
				}
				buf = append(buf, c.Bytes()...)
			default:
				return buf, nil
			}
		}
	}
	for {
		select {
		case c, ok := <-out:
			if !ok {
				return buf, nil
			}
			buf = append(buf, c.Bytes()...)
		case err := <-errs:
			return buf, err
		}
	}
}
