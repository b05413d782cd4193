package extract

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/vvka-141/inetl/pkg/inetl"
)

// decoders maps accepted encoding names to their decoders.
// UTF-8 input may carry a byte order mark, which is dropped.
var decoders = map[string]func() *encoding.Decoder{
	"utf-8":        func() *encoding.Decoder { return unicode.UTF8BOM.NewDecoder() },
	"latin1":       charmap.ISO8859_1.NewDecoder,
	"iso-8859-1":   charmap.ISO8859_1.NewDecoder,
	"windows-1252": charmap.Windows1252.NewDecoder,
	"cp1252":       charmap.Windows1252.NewDecoder,
	"shift_jis":    japanese.ShiftJIS.NewDecoder,
	"sjis":         japanese.ShiftJIS.NewDecoder,
}

// SupportedEncodings lists the encoding names accepted by WithEncoding.
func SupportedEncodings() []string {
	return []string{"utf-8", "latin1", "windows-1252", "shift_jis"}
}

// ValidateEncoding reports whether name is a supported source encoding.
func ValidateEncoding(name string) error {
	if _, ok := decoders[normalizeEncoding(name)]; !ok {
		return fmt.Errorf("unsupported encoding %q (supported: %s): %w",
			name, strings.Join(SupportedEncodings(), ", "), inetl.ErrInvalidConfig)
	}
	return nil
}

// decodingReader wraps r so that it yields UTF-8 text.
func decodingReader(r io.Reader, name string) (io.Reader, error) {
	newDecoder, ok := decoders[normalizeEncoding(name)]
	if !ok {
		return nil, ValidateEncoding(name)
	}
	return transform.NewReader(r, newDecoder()), nil
}

func normalizeEncoding(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", "utf8":
		return "utf-8"
	case "shift-jis":
		return "shift_jis"
	}
	return name
}
