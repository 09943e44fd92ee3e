package flowbuf

import "io"

// Reader wraps a stream as an io.Reader over its canonical bytes.
// Read blocks until data is delivered, returns io.EOF after the
// terminal signal, and returns the first error signal as its error.
func Reader(s *Stream) io.Reader {
	out, errs := Chunks(s, 16)
	r := &streamReader{out: out, errs: errs}
	if s.terminated() {
		// Terminal signal fired before this subscription; out will
		// never close, so only already-buffered chunks remain.
		r.err = io.EOF
	}
	return r
}

type streamReader struct {
	out  <-chan Chunk
	errs <-chan error
	buf  []byte
	err  error
}

func (r *streamReader) Read(p []byte) (int, error) {
	if len(r.buf) > 0 {
		n := copy(p, r.buf)
		r.buf = r.buf[n:]
		return n, nil
	}
	if r.err != nil {
		select {
		case c, ok := <-r.out:
			if ok {
				n := copy(p, c.Bytes())
				if n < c.Len() {
					r.buf = c.Bytes()[n:]
				}
				return n, nil
			}
		default:
		}
		return 0, r.err
	}

	select {
	case c, ok := <-r.out:
		if !ok {
			r.err = io.EOF
			return 0, io.EOF
		}
		n := copy(p, c.Bytes())
		if n < c.Len() {
			r.buf = c.Bytes()[n:]
		}
		return n, nil
	case err := <-r.errs:
		r.err = err
		return 0, err
	}
}

// Writer wraps a stream as an io.Writer. The backpressure advisory is
// not expressible through io.Writer and is discarded; a full stream
// keeps buffering. Writes after End fail with ErrAlreadyEnded.
func Writer(s *Stream) io.Writer {
	return &streamWriter{s: s}
}

type streamWriter struct {
	s *Stream
}

func (w *streamWriter) Write(p []byte) (int, error) {
	if _, err := w.s.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}
