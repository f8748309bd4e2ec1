package extract

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/satriahrh/suara/domain/entities"
	"github.com/satriahrh/suara/domain/repositories"
)

// documentMediaTypes are the spine entries that hold readable content
var documentMediaTypes = map[string]bool{
	"application/xhtml+xml": true,
	"text/html":             true,
}

// EPUBExtractor reads the XHTML content documents of an EPUB package
type EPUBExtractor struct{}

var _ repositories.TextExtractor = (*EPUBExtractor)(nil)

// NewEPUBExtractor creates an EPUB extractor
func NewEPUBExtractor() *EPUBExtractor {
	return &EPUBExtractor{}
}

// Format implements repositories.TextExtractor
func (e *EPUBExtractor) Format() entities.DocumentFormat {
	return entities.FormatEPUB
}

// ExtractText implements repositories.TextExtractor.
// Content documents are visited in spine (reading) order. Manifest entries the
// spine does not reference, such as the EPUB 3 navigation document, are skipped.
func (e *EPUBExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	rc, err := epub.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("failed to open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return "", fmt.Errorf("epub has no package document")
	}

	var parts []string
	for _, itemref := range rc.Rootfiles[0].Spine.Itemrefs {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		item := itemref.Item
		if item == nil || !documentMediaTypes[strings.ToLower(item.MediaType)] {
			continue
		}

		text, err := readItem(item)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", item.HREF, err)
		}
		if text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, "\n"), nil
}

func readItem(item *epub.Item) (string, error) {
	r, err := item.Open()
	if err != nil {
		return "", err
	}
	defer r.Close()

	return htmlToText(r)
}

// htmlToText strips markup, keeping body text and breaking lines at block elements
func htmlToText(r io.Reader) (string, error) {
	tokenizer := html.NewTokenizer(r)

	var (
		b        strings.Builder
		skipping int
	)

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if err := tokenizer.Err(); err != io.EOF {
				return "", err
			}
			return normalizeLines(b.String()), nil
		case html.TextToken:
			if skipping == 0 {
				b.Write(tokenizer.Text())
			}
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			a := atom.Lookup(name)
			if isSkippedElement(a) {
				skipping++
			} else if isBlockElement(a) {
				b.WriteByte('\n')
			}
		case html.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			if isBlockElement(atom.Lookup(name)) {
				b.WriteByte('\n')
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			a := atom.Lookup(name)
			if isSkippedElement(a) {
				if skipping > 0 {
					skipping--
				}
			} else if isBlockElement(a) {
				b.WriteByte('\n')
			}
		}
	}
}

func isSkippedElement(a atom.Atom) bool {
	switch a {
	case atom.Head, atom.Script, atom.Style, atom.Title:
		return true
	}
	return false
}

func isBlockElement(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Br, atom.Li, atom.Tr, atom.Blockquote, atom.Section, atom.Article,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Pre, atom.Hr:
		return true
	}
	return false
}

// normalizeLines trims every line and drops the empty ones
func normalizeLines(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
