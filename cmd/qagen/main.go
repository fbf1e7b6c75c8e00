// Command qagen generates a full evaluation set: questions derived from the
// document corpus, then grounded answers for each of them.
package main

import (
	"context"
	"flag"
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
	"github.com/Mamo1031/rag-evaluator/internal/writer"
)

const (
	defaultCount        = 100
	defaultQuestionsOut = "data/qa/question/q_auto100_office_manual.txt"
	defaultAnswersOut   = "data/qa/answer/a_auto100_office_manual.txt"
)

func main() {
	var (
		cfgPath      string
		count        int
		questionsOut string
		answersOut   string
	)
	flag.StringVar(&cfgPath, "config", "rageval.yaml", "Path to pipeline YAML config (defaults apply if missing)")
	flag.IntVar(&count, "count", defaultCount, "Number of questions/answers to generate")
	flag.StringVar(&questionsOut, "questions-out", defaultQuestionsOut, "Output path for generated questions")
	flag.StringVar(&answersOut, "answers-out", defaultAnswersOut, "Output path for generated answers")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	if count <= 0 {
		logger.Fatal("--count must be a positive integer")
	}

	env, err := config.LoadEnv()
	if err != nil {
		logger.Fatal("failed to load environment", zap.Error(err))
	}
	pipeline, err := config.LoadPipeline(cfgPath)
	if err != nil {
		logger.Fatal("failed to load pipeline config", zap.Error(err))
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

	client := chat.NewClient(env, pipeline.Generator.ModelVariant)

	logger.Info("generating questions", zap.Int("count", count))
	questionGen := generator.NewQuestionGenerator(client, raw, generator.QuestionOptions{
		Rounds:       pipeline.Generator.QuestionRounds,
		ContextChars: pipeline.Generator.QuestionContextChars,
		MaxRetries:   env.MaxRetries,
	}, logger)
	qs, err := questionGen.Generate(ctx, count)
	if err != nil {
		logger.Fatal("question generation failed", zap.Error(err))
	}

	answerer := generator.NewAnswerer(client, idx, generator.Options{
		TopK:       pipeline.Retrieval.TopK,
		MaxRetries: env.MaxRetries,
		Pause:      time.Duration(pipeline.Generator.PauseMillis) * time.Millisecond,
	}, logger)
	answers, err := answerer.AnswerAll(ctx, qs)
	if err != nil {
		logger.Fatal("answer generation failed", zap.Error(err))
	}

	if err := writer.WriteLines(questionsOut, qs); err != nil {
		logger.Fatal("failed to write questions", zap.Error(err))
	}
	if err := writer.WriteLines(answersOut, answers); err != nil {
		logger.Fatal("failed to write answers", zap.Error(err))
	}
	logger.Info("saved question/answer set",
		zap.String("questions", questionsOut),
		zap.String("answers", answersOut))
}
