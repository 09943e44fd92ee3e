// Package flowbuf provides a buffered, flow-controlled stream adapter.
//
// A [Stream] sits between a data producer and one or more consumers. It
// accepts writes on one side, buffers them in an internal chunk queue,
// and releases them to listeners according to an explicit pause/resume
// protocol. Delivery is always asynchronous relative to the call that
// triggered it, chunks arrive in write order, and the terminal end
// signal fires exactly once after the queue has fully drained.
//
// # Quick Start
//
//	s := flowbuf.New()
//	s.OnData(func(c flowbuf.Chunk) { fmt.Print(c.Text()) })
//	s.OnEnd(func() { fmt.Println() })
//	s.SetEncoding(flowbuf.UTF8)
//	s.Write([]byte("hello, "))
//	s.EndWith([]byte("world"))
//
// # Construction
//
// Streams are created empty with [New], or bound to an initial source
// with [NewText], [NewBytes], and [NewReadable]. Literal sources are
// written and ended immediately; a readable source is piped in, with
// its data, end, and error signals relayed as the new stream's own.
//
// # Flow control
//
// [Stream.Pause] suspends delivery without rejecting writes; queued
// data and a pending end signal are held until [Stream.Resume]. Both
// calls are idempotent. Write and Unshift return an advisory boolean
// that turns false once the buffered size reaches the configured
// maximum; callers may keep writing regardless.
//
// # Piping
//
// [Stream.Pipe] forwards every delivered chunk to a [Destination] and
// ends it when the stream ends. A destination reporting backpressure
// pauses the stream until the destination drains, and errors on either
// side of a pipe surface through the error signal rather than a panic.
package flowbuf
