package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/satriahrh/suara/domain/entities"
	"github.com/satriahrh/suara/domain/repositories"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// textEncoding is one step of the decode fallback chain
type textEncoding struct {
	name   string
	decode func([]byte) (string, bool)
}

// textEncodings is tried in order; the first that accepts the bytes wins.
// Windows-1252 refuses the C1 controls x/text substitutes for its five
// undefined bytes, so those inputs fall through to ISO-8859-15. ISO-8859-15
// defines every byte, which leaves ISO-8859-1 as a last resort only.
var textEncodings = []textEncoding{
	{name: "utf-8", decode: decodeUTF8},
	{name: "windows-1252", decode: singleByteDecoder(charmap.Windows1252, true)},
	{name: "iso-8859-15", decode: singleByteDecoder(charmap.ISO8859_15, false)},
	{name: "iso-8859-1", decode: singleByteDecoder(charmap.ISO8859_1, false)},
}

// TextExtractor reads plain text files
type TextExtractor struct{}

var _ repositories.TextExtractor = (*TextExtractor)(nil)

// NewTextExtractor creates a plain text extractor
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Format implements repositories.TextExtractor
func (e *TextExtractor) Format() entities.DocumentFormat {
	return entities.FormatText
}

// ExtractText implements repositories.TextExtractor
func (e *TextExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}

	text, _, err := DecodeText(data)
	if err != nil {
		return "", entities.NewDecodeError(entities.FormatText, err)
	}
	return text, nil
}

// DecodeText decodes data with the first accepting encoding and reports which one was used
func DecodeText(data []byte) (string, string, error) {
	for _, enc := range textEncodings {
		if text, ok := enc.decode(data); ok {
			return text, enc.name, nil
		}
	}
	return "", "", fmt.Errorf("content is not valid in any supported encoding")
}

func decodeUTF8(data []byte) (string, bool) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

func singleByteDecoder(cm *charmap.Charmap, rejectC1 bool) func([]byte) (string, bool) {
	return func(data []byte) (string, bool) {
		for _, b := range data {
			r := cm.DecodeByte(b)
			if r == utf8.RuneError {
				return "", false
			}
			if rejectC1 && r >= 0x80 && r <= 0x9F {
				return "", false
			}
		}

		out, err := cm.NewDecoder().Bytes(data)
		if err != nil {
			return "", false
		}
		return string(out), true
	}
}
