// Package sqltext converts result-column bytes from the client encoding the
// server delivered them in into UTF-8 for application output variables.
package sqltext

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding identifies the client encoding of a raw result buffer.
type Encoding uint8

const (
	// EncUTF8 passes bytes through unchanged.
	EncUTF8 Encoding = iota
	// EncLatin1 is Windows-1252, the common single-byte client encoding.
	EncLatin1
	// EncUTF16LE is little-endian UTF-16 without a BOM.
	EncUTF16LE
)

// String returns the encoding name as reported in diagnostics.
func (e Encoding) String() string {
	switch e {
	case EncUTF8:
		return "utf8"
	case EncLatin1:
		return "latin1"
	case EncUTF16LE:
		return "utf16le"
	default:
		return fmt.Sprintf("encoding(%d)", uint8(e))
	}
}

// Decode converts raw column bytes in the given encoding to UTF-8.
func Decode(raw []byte, enc Encoding) ([]byte, error) {
	switch enc {
	case EncUTF8:
		return raw, nil
	case EncLatin1:
		// Fast path: ASCII is identical in Windows-1252 and UTF-8
		if isASCII(raw) {
			return raw, nil
		}
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("sqltext: decode latin1 column: %w", err)
		}
		return decoded, nil
	case EncUTF16LE:
		if len(raw)%2 != 0 {
			return nil, errors.New("sqltext: utf16 column has odd length")
		}
		dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
		decoded, err := dec.Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("sqltext: decode utf16 column: %w", err)
		}
		return decoded, nil
	default:
		return nil, fmt.Errorf("sqltext: unknown client encoding %d", enc)
	}
}

// isASCII reports whether all bytes are below 0x80.
func isASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}
	return true
}
