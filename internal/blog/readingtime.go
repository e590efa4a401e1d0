package blog

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// WordsPerMinute is the reading speed used for ReadingTime.
const WordsPerMinute = 200

// ReadingTime estimates minutes to read rendered HTML, rounded up.
func ReadingTime(rendered []byte) int {
	words := CountWords(rendered)
	return (words + WordsPerMinute - 1) / WordsPerMinute
}

// CountWords counts whitespace separated words in the text nodes of an
// HTML fragment, ignoring script and style bodies.
func CountWords(rendered []byte) int {
	z := html.NewTokenizer(bytes.NewReader(rendered))
	words, skip := 0, 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return words
		case html.StartTagToken:
			if isRawTextTag(z) {
				skip++
			}
		case html.EndTagToken:
			if isRawTextTag(z) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				words += len(strings.Fields(string(z.Text())))
			}
		}
	}
}

func isRawTextTag(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	return string(name) == "script" || string(name) == "style"
}
