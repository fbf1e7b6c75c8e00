package index

import (
	"math"
	"testing"

	"github.com/Mamo1031/rag-evaluator/internal/domain"
)

func TestBuild_EmptyCorpus(t *testing.T) {
	idx := Build(nil)
	if len(idx.Chunks) != 0 {
		t.Errorf("expected no chunks, got %d", len(idx.Chunks))
	}
	if len(idx.IDF) != 0 {
		t.Errorf("expected empty idf table, got %d entries", len(idx.IDF))
	}
}

func TestBuild_CountsAndTotals(t *testing.T) {
	idx := Build([]domain.RawChunk{{Source: "a.md", Text: "aaa"}})
	c := idx.Chunks[0]
	if c.Counts["aa"] != 2 {
		t.Errorf("expected bigram aa counted twice, got %d", c.Counts["aa"])
	}
	if c.Total != 2 {
		t.Errorf("expected total 2, got %d", c.Total)
	}
}

func TestBuild_TotalFlooredToOne(t *testing.T) {
	idx := Build([]domain.RawChunk{{Source: "a.md", Text: "x"}})
	c := idx.Chunks[0]
	if c.Total != 1 {
		t.Errorf("zero-bigram chunk should have total 1, got %d", c.Total)
	}
	if c.Norm != 1.0 {
		t.Errorf("zero-vector chunk should have norm floored to 1.0, got %v", c.Norm)
	}
}

func TestBuild_IDFFormula(t *testing.T) {
	// Two chunks; "he" appears in one, so idf = ln((2+1)/(1+1)) + 1.
	idx := Build([]domain.RawChunk{
		{Source: "a.md", Text: "hello"},
		{Source: "b.md", Text: "world"},
	})
	want := math.Log(3.0/2.0) + 1
	got, ok := idx.IDF["he"]
	if !ok {
		t.Fatal("expected idf entry for bigram he")
	}
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("idf(he) = %v, want %v", got, want)
	}
}

func TestBuild_SharedBigramLowerIDF(t *testing.T) {
	idx := Build([]domain.RawChunk{
		{Source: "a.md", Text: "hello world"},
		{Source: "b.md", Text: "world peace"},
	})
	// "wo" appears in both chunks, "he" only in the first.
	if idx.IDF["wo"] >= idx.IDF["he"] {
		t.Errorf("shared bigram should have lower idf: wo=%v he=%v", idx.IDF["wo"], idx.IDF["he"])
	}
}

func TestBuild_NormMatchesDefinition(t *testing.T) {
	idx := Build([]domain.RawChunk{
		{Source: "a.md", Text: "hello"},
		{Source: "b.md", Text: "world"},
	})
	c := idx.Chunks[0]
	sum := 0.0
	for bg, count := range c.Counts {
		w := (float64(count) / float64(c.Total)) * idx.IDF[bg]
		sum += w * w
	}
	want := math.Sqrt(sum)
	if math.Abs(c.Norm-want) > 1e-12 {
		t.Errorf("norm = %v, want %v", c.Norm, want)
	}
	if c.Norm <= 0 {
		t.Errorf("norm should be positive, got %v", c.Norm)
	}
}
