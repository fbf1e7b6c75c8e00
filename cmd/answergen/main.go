// Command answergen generates reference answers for an existing question
// list, grounded in retrieved document chunks.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Mamo1031/rag-evaluator/internal/chat"
	"github.com/Mamo1031/rag-evaluator/internal/chunker"
	"github.com/Mamo1031/rag-evaluator/internal/config"
	"github.com/Mamo1031/rag-evaluator/internal/docs"
	"github.com/Mamo1031/rag-evaluator/internal/generator"
	"github.com/Mamo1031/rag-evaluator/internal/index"
	"github.com/Mamo1031/rag-evaluator/internal/questions"
	"github.com/Mamo1031/rag-evaluator/internal/writer"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "rageval.yaml", "Path to pipeline YAML config (defaults apply if missing)")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	env, err := config.LoadEnv()
	if err != nil {
		logger.Fatal("failed to load environment", zap.Error(err))
	}
	pipeline, err := config.LoadPipeline(cfgPath)
	if err != nil {
		logger.Fatal("failed to load pipeline config", zap.Error(err))
	}

	questionsPath, outputPath := env.QuestionsPath, env.OutputPath
	if args := flag.Args(); len(args) == 2 {
		questionsPath, outputPath = args[0], args[1]
	} else if len(args) != 0 {
		fmt.Fprintln(os.Stderr, "Usage: answergen [--config=rageval.yaml] <questions_path> <answers_path>")
		os.Exit(1)
	}
	if questionsPath == "" || outputPath == "" {
		logger.Fatal("questions and output paths must be given as arguments or via QUESTIONS_PATH / OUTPUT_PATH")
	}
	if env.DocsDir == "" {
		logger.Fatal("DOCS_DIR is not set; configure it in .env")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ch := chunker.NewParagraphChunker(pipeline.Chunker.MaxChars, pipeline.Chunker.MinChars)
	raw, err := docs.LoadChunks(env.DocsDir, ch)
	if err != nil {
		logger.Fatal("failed to load documents", zap.Error(err))
	}
	if len(raw) == 0 {
		logger.Fatal("failed to extract chunks from docs", zap.String("dir", env.DocsDir))
	}
	idx := index.Build(raw)
	logger.Info("corpus indexed", zap.Int("chunks", len(idx.Chunks)), zap.Int("bigrams", len(idx.IDF)))

	qs, err := questions.Load(questionsPath)
	if err != nil {
		logger.Fatal("failed to load questions", zap.Error(err))
	}
	logger.Info("questions loaded", zap.Int("count", len(qs)), zap.String("path", questionsPath))

	client := chat.NewClient(env, pipeline.Generator.ModelVariant)
	answerer := generator.NewAnswerer(client, idx, generator.Options{
		TopK:       pipeline.Retrieval.TopK,
		MaxRetries: env.MaxRetries,
		Pause:      time.Duration(pipeline.Generator.PauseMillis) * time.Millisecond,
	}, logger)

	answers, err := answerer.AnswerAll(ctx, qs)
	if err != nil {
		logger.Fatal("answer generation failed", zap.Error(err))
	}
	if err := writer.WriteLines(outputPath, answers); err != nil {
		logger.Fatal("failed to write answers", zap.Error(err))
	}
	logger.Info("saved answers", zap.String("path", outputPath))
}
