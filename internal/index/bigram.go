// Package index implements a character-bigram TF-IDF index over document
// chunks with cosine-similarity retrieval.
package index

import "unicode"

// Bigrams converts raw text into overlapping character bigrams. All
// whitespace is removed first so a bigram never spans a space. Cleaned text
// of n characters yields n-1 bigrams; zero or one character yields none.
// Operates on runes, not bytes, so multi-byte scripts produce character
// pairs.
func Bigrams(text string) []string {
	runes := make([]rune, 0, len(text))
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		runes = append(runes, r)
	}
	if len(runes) < 2 {
		return nil
	}
	out := make([]string, 0, len(runes)-1)
	for i := 0; i+1 < len(runes); i++ {
		out = append(out, string(runes[i:i+2]))
	}
	return out
}
