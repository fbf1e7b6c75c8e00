package index

import (
	"math"

	"github.com/Mamo1031/rag-evaluator/internal/domain"
)

// IndexedChunk is a chunk augmented with its bigram statistics. Created once
// at index-build time and immutable afterward.
type IndexedChunk struct {
	Source string
	Text   string
	// Counts maps each bigram present in the chunk to its occurrence count.
	Counts map[string]int
	// Total is the bigram count sum, floored to 1 to keep divisions safe.
	Total int
	// Norm is the Euclidean length of the chunk's TF-IDF vector, floored
	// to 1.0 when the computed value is zero.
	Norm float64
}

// Weight returns the TF-IDF weight of one bigram within the chunk.
func (c *IndexedChunk) Weight(bigram string, idf map[string]float64) float64 {
	count, ok := c.Counts[bigram]
	if !ok {
		return 0
	}
	return (float64(count) / float64(c.Total)) * idf[bigram]
}

// Index is a read-only snapshot of an indexed corpus. Once built it may be
// queried concurrently without coordination.
type Index struct {
	Chunks []IndexedChunk
	// IDF maps every bigram observed in the corpus to its smoothed
	// inverse document frequency: ln((N+1)/(df+1)) + 1.
	IDF map[string]float64
}

// Build tokenizes every raw chunk, computes corpus-wide document
// frequencies, and emits the indexed chunks together with the shared IDF
// table. An empty input yields an empty index, which is a valid state;
// callers decide whether that is fatal.
func Build(rawChunks []domain.RawChunk) *Index {
	docFreq := make(map[string]int)
	chunks := make([]IndexedChunk, 0, len(rawChunks))
	for _, raw := range rawChunks {
		counts := make(map[string]int)
		total := 0
		for _, bg := range Bigrams(raw.Text) {
			counts[bg]++
			total++
		}
		if total == 0 {
			total = 1
		}
		for bg := range counts {
			docFreq[bg]++
		}
		chunks = append(chunks, IndexedChunk{
			Source: raw.Source,
			Text:   raw.Text,
			Counts: counts,
			Total:  total,
		})
	}

	// N is floored to 1 so the smoothed formula stays defined for an
	// empty corpus.
	totalDocs := len(chunks)
	if totalDocs == 0 {
		totalDocs = 1
	}
	idf := make(map[string]float64, len(docFreq))
	for bg, df := range docFreq {
		idf[bg] = math.Log(float64(totalDocs+1)/float64(df+1)) + 1
	}

	for i := range chunks {
		c := &chunks[i]
		sum := 0.0
		for bg, count := range c.Counts {
			w := (float64(count) / float64(c.Total)) * idf[bg]
			sum += w * w
		}
		c.Norm = math.Sqrt(sum)
		if c.Norm == 0 {
			c.Norm = 1.0
		}
	}
	return &Index{Chunks: chunks, IDF: idf}
}
