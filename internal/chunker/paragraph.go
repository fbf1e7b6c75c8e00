// Package chunker splits document text into paragraph-bounded chunks.
package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Default size targets, in characters. Tunable via config.
const (
	DefaultMaxChars = 900
	DefaultMinChars = 120
)

var paragraphSplitter = regexp.MustCompile(`\n{2,}`)

// ParagraphChunker greedily packs paragraphs into chunks of at most maxChars
// characters, dropping chunks shorter than minChars.
type ParagraphChunker struct {
	maxChars int
	minChars int
}

// NewParagraphChunker creates a chunker with the given size targets.
// Non-positive values fall back to the defaults.
func NewParagraphChunker(maxChars, minChars int) *ParagraphChunker {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	if minChars <= 0 {
		minChars = DefaultMinChars
	}
	return &ParagraphChunker{maxChars: maxChars, minChars: minChars}
}

// Split breaks text on blank-line boundaries into paragraphs and
// accumulates them into chunks. When the next paragraph would push the
// buffer over maxChars the buffer is flushed first; a flushed buffer becomes
// a chunk only if its joined length is at least minChars, otherwise it is
// dropped. Sizes count runes so the thresholds mean characters, not bytes.
//
// The undersized-buffer drop can lose content; it matches the historical
// behavior on purpose.
func (c *ParagraphChunker) Split(text string) []string {
	var paragraphs []string
	for _, p := range paragraphSplitter.Split(text, -1) {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	var chunks []string
	var buffer []string
	size := 0
	flush := func() {
		combined := strings.TrimSpace(strings.Join(buffer, "\n"))
		if utf8.RuneCountInString(combined) >= c.minChars {
			chunks = append(chunks, combined)
		}
		buffer = nil
		size = 0
	}
	for _, paragraph := range paragraphs {
		plen := utf8.RuneCountInString(paragraph)
		if size+plen+1 > c.maxChars && len(buffer) > 0 {
			flush()
		}
		buffer = append(buffer, paragraph)
		size += plen + 1
	}
	if len(buffer) > 0 {
		flush()
	}
	return chunks
}
