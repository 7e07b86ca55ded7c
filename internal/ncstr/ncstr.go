// Package ncstr handles the text-encoding edge cases of char/string
// attribute payloads: invalid UTF-8 is replaced rather than
// rejected, and text written by non-Go tooling in a legacy 8-bit encoding or
// carrying a byte-order mark still decodes to a sensible Go string.
package ncstr

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// SanitizeUTF8 decodes a char/string attribute payload, replacing each
// invalid UTF-8 byte sequence with
// the Unicode replacement character rather than erroring.
func SanitizeUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size <= 1 {
			sb.WriteRune(utf8.RuneError)
			b = b[1:]
			continue
		}
		sb.WriteRune(r)
		b = b[size:]
	}
	return sb.String()
}

// DecodeLegacy decodes a char payload written by older, non-UTF-8-aware
// tooling using the Windows-1252 fallback charmap.
func DecodeLegacy(data []byte) (string, error) {
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// EncodeLegacy is the reverse of DecodeLegacy, for writing a char attribute
// in the legacy 8-bit encoding some older readers expect.
func EncodeLegacy(s string) ([]byte, error) {
	return charmap.Windows1252.NewEncoder().Bytes([]byte(s))
}

// StripBOM decodes data that may carry a UTF-8 or UTF-16 byte-order mark
// (some non-Go netCDF writers prepend one to text attributes), transcoding
// UTF-16 payloads to UTF-8 and dropping a UTF-8 BOM if present.
func StripBOM(data []byte) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
