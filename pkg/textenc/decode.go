// Package textenc decodes file bytes into text using a declared encoding
// name, as supplied by the caller of the outliner.
package textenc

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	// ErrUnknownEncoding is returned for encoding names that cannot be resolved.
	ErrUnknownEncoding = errors.New("unknown encoding")

	// ErrUndecodable is returned when the bytes are invalid in the encoding.
	ErrUndecodable = errors.New("undecodable input")
)

// DefaultEncoding is used when no encoding name is given.
const DefaultEncoding = "utf-8"

// aliases maps .NET style encoding names onto IANA names.
//
//nolint:gochecknoglobals // Read-only lookup table
var aliases = map[string]string{
	"":                 DefaultEncoding,
	"default":          DefaultEncoding,
	"utf8":             DefaultEncoding,
	"unicode":          "utf-16le",
	"utf-16":           "utf-16le",
	"bigendianunicode": "utf-16be",
	"ascii":            "us-ascii",
	"latin1":           "iso-8859-1",
}

// Lookup resolves an encoding name. Names are matched case-insensitively
// against .NET aliases, the IANA registry and the WHATWG index, in that order.
func Lookup(name string) (encoding.Encoding, string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		key = alias
	}

	switch key {
	case "utf-8":
		return unicode.UTF8, key, nil
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), key, nil
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), key, nil
	}

	if enc, err := ianaindex.IANA.Encoding(key); err == nil && enc != nil {
		canonical, nameErr := ianaindex.IANA.Name(enc)
		if nameErr != nil {
			canonical = key
		}
		return enc, strings.ToLower(canonical), nil
	}
	if enc, err := htmlindex.Get(key); err == nil {
		canonical, nameErr := htmlindex.Name(enc)
		if nameErr != nil {
			canonical = key
		}
		return enc, canonical, nil
	}

	return nil, "", fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}

// Decode converts data to text. A byte order mark overrides the declared
// encoding and is not part of the result. UTF-8 input must be valid; other
// encodings must decode without error.
func Decode(data []byte, name string) (string, error) {
	enc, canonical, err := Lookup(name)
	if err != nil {
		return "", err
	}

	if canonical == "utf-8" {
		data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
		if !hasUTF16BOM(data) {
			if !utf8.Valid(data) {
				return "", fmt.Errorf("%w: invalid UTF-8", ErrUndecodable)
			}
			return string(data), nil
		}
	}

	decoder := unicode.BOMOverride(enc.NewDecoder())
	decoded, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrUndecodable, canonical, err)
	}
	if !utf8.Valid(decoded) {
		return "", fmt.Errorf("%w: %s produced invalid text", ErrUndecodable, canonical)
	}

	return string(decoded), nil
}

func hasUTF16BOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xff, 0xfe}) || bytes.HasPrefix(data, []byte{0xfe, 0xff})
}
