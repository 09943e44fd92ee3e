package flowbuf

// Chunk is an immutable unit of delivered data. It always carries the
// canonical bytes that were buffered; when the delivering stream has an
// output encoding set it additionally carries the encoded text form.
type Chunk struct {
	data []byte
	text string
	enc  Encoding
}

// Bytes returns the canonical bytes of the chunk. The returned slice
// must not be modified.
func (c Chunk) Bytes() []byte {
	return c.data
}

// Text returns the chunk rendered in the delivering stream's output
// encoding, or the empty string for a raw chunk.
func (c Chunk) Text() string {
	return c.text
}

// IsText reports whether the chunk was delivered as encoded text.
func (c Chunk) IsText() bool {
	return c.enc != Raw
}

// Encoding returns the output encoding the chunk was delivered with.
func (c Chunk) Encoding() Encoding {
	return c.enc
}

// Len returns the canonical byte length of the chunk.
func (c Chunk) Len() int {
	return len(c.data)
}
