package flowbuf

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names a text representation of stream data. The zero value
// Raw means chunks are delivered as bytes without conversion.
//
// The codec works in two stages so the queue stays encoding-agnostic:
// input written with a source encoding is decoded to canonical bytes
// before it is buffered, and the stream's output encoding (if any) is
// applied only when a chunk is delivered.
type Encoding string

const (
	// Raw delivers chunks as unconverted bytes.
	Raw Encoding = ""
	// UTF8 treats bytes as UTF-8 text.
	UTF8 Encoding = "utf8"
	// Hex represents bytes as lowercase hexadecimal text.
	Hex Encoding = "hex"
	// Base64 represents bytes as standard, padded base64 text.
	Base64 Encoding = "base64"
	// Base64URL represents bytes as unpadded URL-safe base64 text.
	Base64URL Encoding = "base64url"
	// Latin1 treats bytes as ISO 8859-1 text.
	Latin1 Encoding = "latin1"
	// UTF16LE treats bytes as little-endian UTF-16 text.
	UTF16LE Encoding = "utf16le"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// ParseEncoding resolves a textual encoding name, accepting the common
// aliases for each supported encoding. It returns ErrUnknownEncoding
// for names the codec cannot handle.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(name) {
	case "":
		return Raw, nil
	case "utf8", "utf-8":
		return UTF8, nil
	case "hex":
		return Hex, nil
	case "base64":
		return Base64, nil
	case "base64url":
		return Base64URL, nil
	case "latin1", "binary":
		return Latin1, nil
	case "utf16le", "utf-16le":
		return UTF16LE, nil
	}
	return Raw, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}

func validEncoding(enc Encoding) bool {
	switch enc {
	case Raw, UTF8, Hex, Base64, Base64URL, Latin1, UTF16LE:
		return true
	}
	return false
}

// decodeText canonicalizes text in the given source encoding into raw
// bytes for buffering. Malformed hex or base64 input is rejected with
// ErrInvalidData.
func decodeText(s string, enc Encoding) ([]byte, error) {
	switch enc {
	case Raw, UTF8:
		return []byte(s), nil
	case Hex:
		p, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
		}
		return p, nil
	case Base64:
		p, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
		}
		return p, nil
	case Base64URL:
		p, err := base64.RawURLEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
		}
		return p, nil
	case Latin1:
		p, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
		}
		return p, nil
	case UTF16LE:
		p, err := utf16le.NewEncoder().Bytes([]byte(s))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
		}
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, string(enc))
}

// encodeBytes renders canonical bytes in the given output encoding.
// Multi-byte text encodings replace sequences that have no valid
// representation rather than failing, so delivery never stalls on
// malformed data.
func encodeBytes(p []byte, enc Encoding) (string, error) {
	switch enc {
	case Raw, UTF8:
		return string(p), nil
	case Hex:
		return hex.EncodeToString(p), nil
	case Base64:
		return base64.StdEncoding.EncodeToString(p), nil
	case Base64URL:
		return base64.RawURLEncoding.EncodeToString(p), nil
	case Latin1:
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(p)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidData, err)
		}
		return string(out), nil
	case UTF16LE:
		out, err := utf16le.NewDecoder().Bytes(p)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidData, err)
		}
		return string(out), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, string(enc))
}
