// Command ragexplore is an interactive preview of the retrieval engine: it
// indexes the configured docs directory and shows which chunks each query
// would hand to the completion service.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/Mamo1031/rag-evaluator/internal/chunker"
	"github.com/Mamo1031/rag-evaluator/internal/config"
	"github.com/Mamo1031/rag-evaluator/internal/docs"
	"github.com/Mamo1031/rag-evaluator/internal/index"
	"github.com/Mamo1031/rag-evaluator/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	var docsDir string
	flag.StringVar(&cfgPath, "config", "rageval.yaml", "Path to pipeline YAML config (defaults apply if missing)")
	flag.StringVar(&docsDir, "docs", "", "Docs directory (overrides DOCS_DIR)")
	flag.Parse()

	if docsDir == "" {
		docsDir = os.Getenv("DOCS_DIR")
	}
	if docsDir == "" {
		fmt.Println("Usage: ragexplore [--config=rageval.yaml] --docs=path/to/docs")
		os.Exit(1)
	}

	pipeline, err := config.LoadPipeline(cfgPath)
	if err != nil {
		log.Fatalf("failed to load pipeline config: %v", err)
	}

	ch := chunker.NewParagraphChunker(pipeline.Chunker.MaxChars, pipeline.Chunker.MinChars)
	raw, err := docs.LoadChunks(docsDir, ch)
	if err != nil {
		log.Fatalf("failed to load documents: %v", err)
	}
	if len(raw) == 0 {
		log.Fatalf("failed to extract chunks from docs: %s", docsDir)
	}
	idx := index.Build(raw)

	summary := fmt.Sprintf("Indexed %d chunks (%d bigrams) from %s", len(idx.Chunks), len(idx.IDF), docsDir)
	m := tui.New(idx, pipeline.Retrieval.TopK, summary)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
