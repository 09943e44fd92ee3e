package flowbuf

import (
	"fmt"
	"slices"
)

// Delivery scheduling. flush spawns at most one drain goroutine per
// stream, guarded by the delivering flag; the goroutine loops over
// pending work and exits when nothing is eligible. Because the flag is
// cleared under the same lock that re-checks eligibility, a concurrent
// write or resume either finds the goroutine still running (and its
// next iteration picks the work up) or finds it gone and spawns a new
// one. Listener callbacks run outside the lock, so a callback may
// freely call back into the stream.

// flush requests an asynchronous delivery attempt.
func (s *Stream) flush() {
	s.mu.Lock()
	if !s.delivering && s.eligibleLocked() {
		s.delivering = true
		go s.drainLoop()
	}
	s.mu.Unlock()
}

// eligibleLocked reports whether any signal can be delivered right
// now. Pending errors are always eligible; pause gates only data and
// the terminal signal. Data and the terminal signal additionally wait
// for a matching listener so that they are buffered, not lost, on a
// stream nobody reads yet. A failed stream delivers its remaining
// errors and nothing else.
func (s *Stream) eligibleLocked() bool {
	if len(s.pendingErrs) > 0 {
		return true
	}
	if s.failed || s.paused {
		return false
	}
	if !s.queue.empty() && len(s.onData) > 0 {
		return true
	}
	return s.ended && s.queue.empty() && !s.endEmitted && len(s.onEnd) > 0
}

func (s *Stream) drainLoop() {
	for {
		s.mu.Lock()

		if len(s.pendingErrs) > 0 {
			err := s.pendingErrs[0]
			s.pendingErrs = s.pendingErrs[1:]
			handlers := slices.Clone(s.onError)
			s.deliveredErrs++
			m := s.metricsLocked()
			log := s.logger
			s.mu.Unlock()

			if len(handlers) == 0 {
				log.Error("FLOWBUF: unhandled stream error", "stream", s.id, "error", err)
			}
			for _, fn := range handlers {
				fn(err)
			}
			s.collect(m)
			continue
		}

		if s.failed || s.paused {
			s.delivering = false
			s.mu.Unlock()
			return
		}

		if !s.queue.empty() && len(s.onData) > 0 {
			wasFull := s.fullLocked()
			p, ok := s.queue.shift()
			if !ok {
				s.failLocked("queue reported data but had none")
				s.mu.Unlock()
				continue
			}
			chunk, err := newChunk(p, s.enc)
			if err != nil {
				s.pendingErrs = append(s.pendingErrs, err)
				s.mu.Unlock()
				continue
			}
			dataHandlers := slices.Clone(s.onData)
			var drainHandlers []func()
			if wasFull && !s.fullLocked() {
				drainHandlers = slices.Clone(s.onDrain)
			}
			s.deliveredChunks++
			s.deliveredBytes += len(p)
			m := s.metricsLocked()
			s.mu.Unlock()

			for _, fn := range dataHandlers {
				fn(chunk)
			}
			for _, fn := range drainHandlers {
				fn()
			}
			s.collect(m)
			continue
		}

		if s.ended && s.queue.empty() && !s.endEmitted && len(s.onEnd) > 0 {
			s.endEmitted = true
			s.readable = false
			handlers := slices.Clone(s.onEnd)
			m := s.metricsLocked()
			s.mu.Unlock()

			for _, fn := range handlers {
				fn()
			}
			s.collect(m)
			continue
		}

		s.delivering = false
		s.mu.Unlock()
		return
	}
}

// failLocked marks the stream as inconsistent: the fault is surfaced
// through the error signal and no further data or terminal signal is
// scheduled. The host process is never crashed.
func (s *Stream) failLocked(msg string) {
	s.failed = true
	s.readable = false
	s.pendingErrs = append(s.pendingErrs, fmt.Errorf("%w: %s", ErrInternal, msg))
	s.logger.Error("FLOWBUF: stream failed", "stream", s.id, "fault", msg)
}

func newChunk(p []byte, enc Encoding) (Chunk, error) {
	if enc == Raw {
		return Chunk{data: p}, nil
	}
	text, err := encodeBytes(p, enc)
	if err != nil {
		return Chunk{}, err
	}
	return Chunk{data: p, text: text, enc: enc}, nil
}
