package index

import (
	"math"
	"sort"
)

// DefaultTopK is the number of chunks returned when no explicit limit is set.
const DefaultTopK = 5

// ScoredChunk pairs a retrieved chunk with its cosine-similarity score.
type ScoredChunk struct {
	Score float64
	Chunk IndexedChunk
}

// Retrieve scores the query against every indexed chunk via cosine
// similarity of TF-IDF bigram vectors and returns the top-K chunks in
// descending score order. Ties keep the original corpus order so results are
// reproducible. A topK larger than the corpus returns the whole corpus
// ranked. Retrieve never mutates the index.
func (idx *Index) Retrieve(query string, topK int) []ScoredChunk {
	if topK <= 0 {
		topK = DefaultTopK
	}

	queryCounts := make(map[string]int)
	queryTotal := 0
	for _, bg := range Bigrams(query) {
		queryCounts[bg]++
		queryTotal++
	}
	if queryTotal == 0 {
		queryTotal = 1
	}

	// Bigrams unseen in the corpus get weight 0 via the idf lookup; they
	// contribute nothing to the dot product or the norm.
	queryWeights := make(map[string]float64, len(queryCounts))
	normSum := 0.0
	for bg, count := range queryCounts {
		w := (float64(count) / float64(queryTotal)) * idx.IDF[bg]
		queryWeights[bg] = w
		normSum += w * w
	}
	queryNorm := math.Sqrt(normSum)
	if queryNorm == 0 {
		queryNorm = 1.0
	}

	scored := make([]ScoredChunk, len(idx.Chunks))
	for i := range idx.Chunks {
		chunk := &idx.Chunks[i]
		dot := 0.0
		for bg, wq := range queryWeights {
			if _, ok := chunk.Counts[bg]; !ok {
				continue
			}
			dot += wq * chunk.Weight(bg, idx.IDF)
		}
		scored[i] = ScoredChunk{
			Score: dot / (queryNorm * chunk.Norm),
			Chunk: *chunk,
		}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if topK > len(scored) {
		topK = len(scored)
	}
	return scored[:topK]
}
