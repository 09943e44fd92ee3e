package flowbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEncoding(t *testing.T) {
	for name, want := range map[string]Encoding{
		"":          Raw,
		"utf8":      UTF8,
		"UTF-8":     UTF8,
		"hex":       Hex,
		"base64":    Base64,
		"base64url": Base64URL,
		"latin1":    Latin1,
		"binary":    Latin1,
		"utf16le":   UTF16LE,
		"UTF-16LE":  UTF16LE,
	} {
		enc, err := ParseEncoding(name)
		require.NoError(t, err, "name %q", name)
		assert.Equal(t, want, enc, "name %q", name)
	}

	_, err := ParseEncoding("ebcdic")
	assert.ErrorIs(t, err, ErrUnknownEncoding)
}

func TestCodec_RoundTrips(t *testing.T) {
	raw := []byte{0x00, 0x68, 0x69, 0xff, 0x10}

	for _, enc := range []Encoding{Hex, Base64, Base64URL} {
		text, err := encodeBytes(raw, enc)
		require.NoError(t, err, "encoding %q", enc)
		back, err := decodeText(text, enc)
		require.NoError(t, err, "encoding %q", enc)
		assert.Equal(t, raw, back, "encoding %q", enc)
	}
}

func TestCodec_UTF8PassesBytesThrough(t *testing.T) {
	p, err := decodeText("héllo", UTF8)
	require.NoError(t, err)
	assert.Equal(t, []byte("héllo"), p)

	text, err := encodeBytes([]byte("héllo"), UTF8)
	require.NoError(t, err)
	assert.Equal(t, "héllo", text)
}

func TestCodec_Latin1(t *testing.T) {
	// "café" in ISO 8859-1 uses a single 0xE9 byte for é.
	p, err := decodeText("café", Latin1)
	require.NoError(t, err)
	assert.Equal(t, []byte{'c', 'a', 'f', 0xe9}, p)

	text, err := encodeBytes(p, Latin1)
	require.NoError(t, err)
	assert.Equal(t, "café", text)
}

func TestCodec_UTF16LE(t *testing.T) {
	p, err := decodeText("hi", UTF16LE)
	require.NoError(t, err)
	assert.Equal(t, []byte{'h', 0x00, 'i', 0x00}, p)

	text, err := encodeBytes(p, UTF16LE)
	require.NoError(t, err)
	assert.Equal(t, "hi", text)
}

func TestCodec_InvalidInput(t *testing.T) {
	_, err := decodeText("not hex!", Hex)
	assert.ErrorIs(t, err, ErrInvalidData)

	_, err = decodeText("%%%", Base64)
	assert.ErrorIs(t, err, ErrInvalidData)
}
