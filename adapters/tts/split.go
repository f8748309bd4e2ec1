package tts

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// splitText packs words into chunks of at most limit runes.
// Words longer than limit are cut; chunks without letters or digits are dropped.
func splitText(text string, limit int) []string {
	var (
		chunks  []string
		current strings.Builder
		size    int
	)

	emit := func(s string) {
		if isSpeakable(s) {
			chunks = append(chunks, s)
		}
	}
	flush := func() {
		if size > 0 {
			emit(current.String())
		}
		current.Reset()
		size = 0
	}

	for _, word := range strings.Fields(text) {
		for utf8.RuneCountInString(word) > limit {
			flush()
			runes := []rune(word)
			emit(string(runes[:limit]))
			word = string(runes[limit:])
		}

		n := utf8.RuneCountInString(word)
		if size > 0 && size+1+n > limit {
			flush()
		}
		if size > 0 {
			current.WriteByte(' ')
			size++
		}
		current.WriteString(word)
		size += n
	}
	flush()

	return chunks
}

func isSpeakable(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
