package segy

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// TextEncoding is the character set of a textual file header.
type TextEncoding int

const (
	EncodingEBCDIC TextEncoding = iota
	EncodingASCII
)

func (e TextEncoding) String() string {
	if e == EncodingASCII {
		return "ASCII"
	}
	return "EBCDIC"
}

// TextHeader is a 3200-byte textual header: 40 card images of 80 characters.
type TextHeader struct {
	raw      [TextHeaderSize]byte
	encoding TextEncoding
}

// NewTextHeader wraps raw textual header bytes and detects their encoding.
func NewTextHeader(raw []byte) TextHeader {
	var h TextHeader
	copy(h.raw[:], raw)
	h.encoding = detectTextEncoding(h.raw[:])
	return h
}

// Encoding returns the detected character set.
func (h TextHeader) Encoding() TextEncoding { return h.encoding }

// Bytes returns a copy of the raw header.
func (h TextHeader) Bytes() []byte {
	b := make([]byte, TextHeaderSize)
	copy(b, h.raw[:])
	return b
}

// String decodes the header to UTF-8 text.
func (h TextHeader) String() string {
	return h.decode(h.raw[:])
}

// Lines returns the 40 card images with trailing blanks and NULs removed.
func (h TextHeader) Lines() []string {
	lines := make([]string, 0, TextHeaderSize/80)
	for start := 0; start < TextHeaderSize; start += 80 {
		lines = append(lines, strings.TrimRight(h.decode(h.raw[start:start+80]), " \x00"))
	}
	return lines
}

func (h TextHeader) decode(b []byte) string {
	if h.encoding == EncodingASCII {
		return string(b)
	}
	s, _, err := transform.Bytes(charmap.CodePage037.NewDecoder(), b)
	if err != nil {
		return ""
	}
	return string(s)
}

// detectTextEncoding distinguishes EBCDIC from ASCII card images.
//
// EBCDIC text is dominated by blanks (0x40) and letters and digits at or
// above 0x80; ASCII text by blanks (0x20) and letters below 0x7F. The
// header is EBCDIC when bytes of the first kind outnumber printable ASCII.
// Ties, including all-NUL headers, read as ASCII.
func detectTextEncoding(raw []byte) TextEncoding {
	ebcdic, ascii := 0, 0
	for _, b := range raw {
		switch {
		case b == 0x40 || b >= 0x80:
			ebcdic++
		case b >= 0x20 && b < 0x7F:
			ascii++
		}
	}
	if ebcdic > ascii {
		return EncodingEBCDIC
	}
	return EncodingASCII
}

// EncodeEBCDIC converts text to a 3200-byte EBCDIC card image block, padding with blanks.
func EncodeEBCDIC(text string) ([]byte, error) {
	b, _, err := transform.Bytes(charmap.CodePage037.NewEncoder(), []byte(text))
	if err != nil {
		return nil, err
	}
	out := make([]byte, TextHeaderSize)
	for i := range out {
		out[i] = 0x40 // EBCDIC blank
	}
	copy(out, b)
	return out, nil
}
