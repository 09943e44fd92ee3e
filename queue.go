package flowbuf

// chunkQueue holds canonical byte chunks in delivery order along with
// their combined size. The owning stream serializes all access; the
// queue itself performs no locking.
type chunkQueue struct {
	chunks [][]byte
	size   int
}

// append adds a chunk at the tail.
func (q *chunkQueue) append(p []byte) {
	q.chunks = append(q.chunks, p)
	q.size += len(p)
}

// prepend adds a chunk at the head, ahead of everything already queued.
func (q *chunkQueue) prepend(p []byte) {
	q.chunks = append([][]byte{p}, q.chunks...)
	q.size += len(p)
}

// shift removes and returns the oldest chunk.
func (q *chunkQueue) shift() ([]byte, bool) {
	if len(q.chunks) == 0 {
		return nil, false
	}
	p := q.chunks[0]
	q.chunks[0] = nil
	q.chunks = q.chunks[1:]
	q.size -= len(p)
	return p, true
}

func (q *chunkQueue) empty() bool {
	return q.size == 0 && len(q.chunks) == 0
}
