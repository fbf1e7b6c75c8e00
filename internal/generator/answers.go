// Package generator produces reference questions and answers by combining
// index retrieval with the chat completion service.
package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Mamo1031/rag-evaluator/internal/domain"
	"github.com/Mamo1031/rag-evaluator/internal/index"
	"github.com/Mamo1031/rag-evaluator/internal/prompt"
)

// Options bound the generator's interaction with the completion service.
type Options struct {
	TopK       int
	MaxRetries int
	// Pause is the rate-limiting sleep between consecutive questions.
	Pause time.Duration
}

func (o *Options) applyDefaults() {
	if o.TopK <= 0 {
		o.TopK = index.DefaultTopK
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = 3
	}
	if o.Pause <= 0 {
		o.Pause = 1100 * time.Millisecond
	}
}

// Answerer generates grounded answers for questions against one corpus
// snapshot.
type Answerer struct {
	client domain.Completer
	idx    *index.Index
	opts   Options
	log    *zap.Logger
}

// NewAnswerer creates an answer generator over a built index.
func NewAnswerer(client domain.Completer, idx *index.Index, opts Options, log *zap.Logger) *Answerer {
	opts.applyDefaults()
	if log == nil {
		log = zap.NewNop()
	}
	return &Answerer{client: client, idx: idx, opts: opts, log: log}
}

// Answer retrieves the top chunks for the question, prompts the completion
// service with them, and trims the reply to at most three sentences. An
// empty reply yields an empty answer without error.
func (a *Answerer) Answer(ctx context.Context, question string) (string, error) {
	selected := a.idx.Retrieve(question, a.opts.TopK)
	contextText, _ := prompt.FormatContext(selected)
	userInput := prompt.AnswerUserInput(question, contextText)

	answer, err := completeWithRetry(ctx, a.client, userInput, prompt.AnswerTemplate, a.opts.MaxRetries, "answer generation", a.log)
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", nil
	}
	return truncateSentences(answer, 3), nil
}

// AnswerAll generates one answer per question sequentially, pausing between
// calls to respect service rate limits. Retry exhaustion on one question is
// fatal for that question only: the answer stays empty and the batch goes
// on. Context cancellation stops the whole batch.
func (a *Answerer) AnswerAll(ctx context.Context, qs []string) ([]string, error) {
	answers := make([]string, 0, len(qs))
	for i, q := range qs {
		a.log.Info("generating answer", zap.Int("index", i+1), zap.Int("total", len(qs)))
		answer, err := a.Answer(ctx, q)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("question %d/%d: %w", i+1, len(qs), err)
			}
			a.log.Error("answer failed", zap.Int("index", i+1), zap.Error(err))
			answer = ""
		}
		answers = append(answers, answer)
		if i+1 < len(qs) {
			if err := sleepCtx(ctx, a.opts.Pause); err != nil {
				return nil, err
			}
		}
	}
	return answers, nil
}

// truncateSentences keeps the first n sentences, where a sentence ends at a
// Japanese full stop. Text without full stops passes through unchanged.
func truncateSentences(text string, n int) string {
	parts := strings.SplitAfter(text, "。")
	if len(parts) <= n {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(strings.Join(parts[:n], ""))
}
