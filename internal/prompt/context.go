// Package prompt renders retrieved chunks into prompt context blocks and
// holds the instruction templates sent to the chat service.
package prompt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Mamo1031/rag-evaluator/internal/domain"
	"github.com/Mamo1031/rag-evaluator/internal/index"
)

// FormatContext renders ranked chunks into a numbered text block, one
// "[i] source\ntext" entry per chunk joined by blank lines, preserving the
// input order. The parallel ContextEntry slice carries the same data for
// programmatic consumers (citation metadata).
func FormatContext(chunks []index.ScoredChunk) (string, []domain.ContextEntry) {
	blocks := make([]string, 0, len(chunks))
	entries := make([]domain.ContextEntry, 0, len(chunks))
	for i, sc := range chunks {
		blocks = append(blocks, fmt.Sprintf("[%d] %s\n%s", i+1, sc.Chunk.Source, sc.Chunk.Text))
		entries = append(entries, domain.ContextEntry{Source: sc.Chunk.Source, Text: sc.Chunk.Text})
	}
	return strings.Join(blocks, "\n\n"), entries
}

// BuildQuestionContext renders raw chunks into the same block format, but
// stops before the rendered text would exceed maxChars. Used to give the
// question generator a bounded view of the corpus.
func BuildQuestionContext(rawChunks []domain.RawChunk, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultQuestionContextChars
	}
	var blocks []string
	total := 0
	for i, chunk := range rawChunks {
		block := fmt.Sprintf("[%d] %s\n%s", i+1, chunk.Source, chunk.Text)
		// The cap counts runes, like every other size threshold in this
		// repo; bytes would shrink the Japanese corpus to a third.
		blockLen := utf8.RuneCountInString(block)
		if total+blockLen+2 > maxChars {
			break
		}
		blocks = append(blocks, block)
		total += blockLen + 2
	}
	return strings.Join(blocks, "\n\n")
}

// DefaultQuestionContextChars caps the question-generation context size.
const DefaultQuestionContextChars = 12000
