package entities

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DocumentFormat represents a supported upload format
type DocumentFormat string

const (
	FormatText DocumentFormat = "txt"
	FormatPDF  DocumentFormat = "pdf"
	FormatDocx DocumentFormat = "docx"
	FormatDoc  DocumentFormat = "doc"
	FormatEPUB DocumentFormat = "epub"
)

// SupportedFormats lists every accepted extension, in the order the upload form advertises them
var SupportedFormats = []DocumentFormat{FormatText, FormatPDF, FormatDocx, FormatDoc, FormatEPUB}

// ParseFormat maps an extension (with or without the leading dot, any case) to a DocumentFormat
func ParseFormat(ext string) (DocumentFormat, bool) {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	for _, f := range SupportedFormats {
		if string(f) == ext {
			return f, true
		}
	}
	return "", false
}

// FormatFromFilename returns the format of a filename's extension.
// A filename without a dot has no format.
func FormatFromFilename(filename string) (DocumentFormat, bool) {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return "", false
	}
	return ParseFormat(filename[idx+1:])
}

// Extension returns the extension with a leading dot, suitable for temp file suffixes
func (f DocumentFormat) Extension() string {
	return "." + string(f)
}

// ExtractedDocument is normalized text pulled out of an upload
type ExtractedDocument struct {
	Text   string         `json:"text"`
	Format DocumentFormat `json:"format"`
}

// SanitizeFilename reduces an uploaded filename to a safe base name.
// Path components are dropped, accented letters are folded to their ASCII base
// and any other character outside [A-Za-z0-9._-] becomes an underscore.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base("/" + name)
	if name == "/" || name == "." {
		return ""
	}

	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining mark split off by NFKD
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "._")
}
