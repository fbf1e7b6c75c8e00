package domain

import "context"

// Document represents a single source file loaded into the system.
type Document struct {
	// Name is the display name used in citations (file name without directories).
	Name    string
	Content string
}

// RawChunk is one paragraph-grouped passage extracted from one document.
// It is the chunker's output and the indexer's input; after indexing it is
// superseded by index.IndexedChunk.
type RawChunk struct {
	Source string
	Text   string
}

// ContextEntry is a {source, text} citation record emitted alongside the
// rendered prompt context.
type ContextEntry struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

// Chunker splits a document's text into passage-sized chunk texts.
type Chunker interface {
	Split(text string) []string
}

// Completer sends one prompt (instruction template + user content) to the
// chat completion service and returns the final response text.
type Completer interface {
	Complete(ctx context.Context, userInput, template string) (string, error)
}
