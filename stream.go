package flowbuf

import (
	"bytes"
	"sync"

	"github.com/google/uuid"
)

// Stream is a buffered, flow-controlled stream adapter. It accepts
// writes and end-of-stream signals on one side and delivers buffered
// chunks to registered listeners on the other, in write order, one
// listener callback at a time, always asynchronously relative to the
// call that made the data available.
//
// All methods are safe for concurrent use. Listener callbacks for one
// stream are never invoked concurrently.
type Stream struct {
	id string

	mu    sync.Mutex
	queue chunkQueue

	enc     Encoding
	maxSize int

	readable bool
	writable bool
	paused   bool
	ended    bool

	endEmitted bool
	failed     bool
	delivering bool

	pendingErrs []error

	onData  []func(Chunk)
	onEnd   []func()
	onError []func(error)
	onDrain []func()

	deliveredChunks int
	deliveredBytes  int
	deliveredErrs   int

	logger     Logger
	collectors []MetricsCollector
}

// New creates an empty, unbound stream.
func New(opts ...Option) *Stream {
	cfg := parseConfig(opts)
	return &Stream{
		id:         uuid.NewString(),
		enc:        cfg.encoding,
		maxSize:    cfg.maxSize,
		readable:   true,
		writable:   true,
		logger:     cfg.logger,
		collectors: cfg.collectors,
	}
}

// NewText creates a stream bound to a literal text value. The value is
// written immediately and the stream is ended, so listeners receive the
// full content followed by the terminal signal.
func NewText(v string, opts ...Option) *Stream {
	s := New(opts...)
	_, _ = s.WriteString(v)
	_ = s.End()
	return s
}

// NewBytes creates a stream bound to a literal byte value, written
// immediately and ended, like NewText.
func NewBytes(p []byte, opts ...Option) *Stream {
	s := New(opts...)
	_, _ = s.Write(p)
	_ = s.End()
	return s
}

// NewReadable creates a stream fed by another readable source. The
// source's data is relayed as writes, its end signal ends the stream,
// and its errors surface as the stream's own error signal wrapped in
// ErrUpstream.
func NewReadable(src Readable, opts ...Option) *Stream {
	s := New(opts...)
	s.pipeFrom(src)
	return s
}

// ID returns the stream's unique identifier, as used in log and
// metrics output.
func (s *Stream) ID() string {
	return s.id
}

// Write appends a chunk of raw bytes to the buffer and requests a
// delivery attempt. The data is copied, so the caller may reuse p.
//
// The returned boolean is a backpressure advisory: false means the
// buffer has reached its configured maximum and the caller should slow
// down. Callers may ignore it and keep writing.
//
// Write fails with ErrAlreadyEnded after End and with ErrNotWritable
// on a stream forced non-writable.
func (s *Stream) Write(p []byte) (bool, error) {
	return s.ingest(bytes.Clone(p), false)
}

// WriteString appends a chunk of UTF-8 text. See Write.
func (s *Stream) WriteString(v string) (bool, error) {
	return s.ingest([]byte(v), false)
}

// WriteEncoded decodes text from the given source encoding into
// canonical bytes and appends the result, so data arriving in a
// transport encoding such as base64 is buffered in its decoded form.
// See Write for the advisory return and failure conditions.
func (s *Stream) WriteEncoded(v string, enc Encoding) (bool, error) {
	p, err := decodeText(v, enc)
	if err != nil {
		return false, err
	}
	return s.ingest(p, false)
}

// Unshift inserts a chunk of raw bytes at the head of the buffer,
// ahead of everything already queued. It is the put-back operation for
// a consumer that received data it cannot process yet. Same advisory
// return and failure conditions as Write.
func (s *Stream) Unshift(p []byte) (bool, error) {
	return s.ingest(bytes.Clone(p), true)
}

// UnshiftString inserts UTF-8 text at the head of the buffer. See Unshift.
func (s *Stream) UnshiftString(v string) (bool, error) {
	return s.ingest([]byte(v), true)
}

// UnshiftEncoded decodes text from the given source encoding and
// inserts the canonical bytes at the head of the buffer. See Unshift.
func (s *Stream) UnshiftEncoded(v string, enc Encoding) (bool, error) {
	p, err := decodeText(v, enc)
	if err != nil {
		return false, err
	}
	return s.ingest(p, true)
}

func (s *Stream) ingest(p []byte, head bool) (bool, error) {
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return false, ErrAlreadyEnded
	}
	if !s.writable {
		s.mu.Unlock()
		return false, ErrNotWritable
	}
	if head {
		s.queue.prepend(p)
	} else {
		s.queue.append(p)
	}
	ok := !s.fullLocked()
	s.mu.Unlock()
	s.flush()
	return ok, nil
}

// End closes the write side of the stream. The terminal signal is
// delivered once the queue has fully drained, or immediately if it is
// already empty, deferred while the stream is paused. Calling End
// twice fails with ErrAlreadyEnded.
func (s *Stream) End() error {
	return s.end(nil)
}

// EndWith writes a final chunk and then ends the stream.
func (s *Stream) EndWith(p []byte) error {
	return s.end(bytes.Clone(p))
}

// EndWithEncoded decodes a final chunk from the given source encoding,
// writes it, and ends the stream.
func (s *Stream) EndWithEncoded(v string, enc Encoding) error {
	p, err := decodeText(v, enc)
	if err != nil {
		return err
	}
	return s.end(p)
}

func (s *Stream) end(final []byte) error {
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return ErrAlreadyEnded
	}
	if final != nil {
		if !s.writable {
			s.mu.Unlock()
			return ErrNotWritable
		}
		s.queue.append(final)
	}
	s.ended = true
	s.writable = false
	s.mu.Unlock()
	s.flush()
	return nil
}

// Pause suspends delivery. Writes are still accepted and buffered, but
// no data or terminal signal is delivered until Resume. Idempotent.
func (s *Stream) Pause() {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()
}

// Resume re-enables delivery and triggers a delivery attempt if data
// is queued or a terminal signal is pending. Idempotent.
func (s *Stream) Resume() {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()
	s.flush()
}

// SetEncoding selects the output encoding applied to chunks at
// delivery time. Raw restores byte delivery. Legal at any time; it
// fails only for an encoding the codec does not recognize.
func (s *Stream) SetEncoding(enc Encoding) error {
	if !validEncoding(enc) {
		return ErrUnknownEncoding
	}
	s.mu.Lock()
	s.enc = enc
	s.mu.Unlock()
	return nil
}

// SetWritable forces the write side open or closed. It is an escape
// hatch for external actors that need to reject further writes without
// ending the stream; once the stream has ended it stays non-writable
// regardless.
func (s *Stream) SetWritable(writable bool) {
	s.mu.Lock()
	if !s.ended {
		s.writable = writable
	}
	s.mu.Unlock()
}

// Readable reports whether the stream may still deliver data. It turns
// false once the terminal signal has been delivered.
func (s *Stream) Readable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readable
}

// Writable reports whether the stream currently accepts writes.
func (s *Stream) Writable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writable
}

// Paused reports whether delivery is currently suspended.
func (s *Stream) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// Ended reports whether End has been called.
func (s *Stream) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}

// Empty reports whether no bytes are buffered.
func (s *Stream) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.size == 0
}

// Full reports whether the buffered size has reached the configured
// maximum. A stream with no maximum is never full.
func (s *Stream) Full() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fullLocked()
}

// Size returns the buffered byte count.
func (s *Stream) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.size
}

// Encoding returns the currently selected output encoding.
func (s *Stream) Encoding() Encoding {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc
}

// terminated reports whether the terminal signal has already fired.
// Subscribers that attach afterwards have nothing left to receive.
func (s *Stream) terminated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endEmitted
}

func (s *Stream) fullLocked() bool {
	return s.maxSize > 0 && s.queue.size >= s.maxSize
}

// emitError queues an error for asynchronous delivery through the
// error signal. Errors are delivered in order with other signals but
// are not gated by pause.
func (s *Stream) emitError(err error) {
	s.mu.Lock()
	s.pendingErrs = append(s.pendingErrs, err)
	s.mu.Unlock()
	s.flush()
}
