package generator

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Mamo1031/rag-evaluator/internal/domain"
	"github.com/Mamo1031/rag-evaluator/internal/prompt"
)

// QuestionOptions bound the question-generation rounds.
type QuestionOptions struct {
	// Rounds caps how many completion calls may be spent collecting
	// unique questions.
	Rounds int
	// ContextChars caps the rendered corpus excerpt.
	ContextChars int
	MaxRetries   int
	// RoundPause is the pause between consecutive rounds.
	RoundPause time.Duration
}

func (o *QuestionOptions) applyDefaults() {
	if o.Rounds <= 0 {
		o.Rounds = 6
	}
	if o.ContextChars <= 0 {
		o.ContextChars = prompt.DefaultQuestionContextChars
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = 3
	}
	if o.RoundPause <= 0 {
		o.RoundPause = 800 * time.Millisecond
	}
}

// QuestionGenerator asks the completion service for evaluation questions
// grounded in the corpus excerpts.
type QuestionGenerator struct {
	client domain.Completer
	raw    []domain.RawChunk
	opts   QuestionOptions
	log    *zap.Logger
}

// NewQuestionGenerator creates a question generator over the raw corpus
// chunks.
func NewQuestionGenerator(client domain.Completer, raw []domain.RawChunk, opts QuestionOptions, log *zap.Logger) *QuestionGenerator {
	opts.applyDefaults()
	if log == nil {
		log = zap.NewNop()
	}
	return &QuestionGenerator{client: client, raw: raw, opts: opts, log: log}
}

// Generate collects targetCount unique questions across up to Rounds
// completion calls. Each round requests the remaining count and lists the
// already-accepted questions so the model avoids rephrasings; replies are
// normalized line by line and deduplicated. Falling short after all rounds
// is an error.
func (g *QuestionGenerator) Generate(ctx context.Context, targetCount int) ([]string, error) {
	if targetCount <= 0 {
		return nil, fmt.Errorf("question count must be positive, got %d", targetCount)
	}
	contextText := prompt.BuildQuestionContext(g.raw, g.opts.ContextChars)
	if contextText == "" {
		return nil, fmt.Errorf("no context for question generation")
	}

	var questions []string
	seen := make(map[string]struct{})
	for round := 1; round <= g.opts.Rounds; round++ {
		remaining := targetCount - len(questions)
		if remaining <= 0 {
			break
		}
		g.log.Info("generating questions",
			zap.Int("round", round),
			zap.Int("have", len(questions)),
			zap.Int("remaining", remaining))

		raw, err := completeWithRetry(ctx, g.client, questionUserInput(questions, contextText, remaining), prompt.QuestionTemplate, g.opts.MaxRetries, "question generation", g.log)
		if err != nil {
			return nil, err
		}
		for _, q := range ParseQuestions(raw) {
			key := questionKey(q)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			questions = append(questions, q)
			if len(questions) >= targetCount {
				break
			}
		}
		if round < g.opts.Rounds && len(questions) < targetCount {
			if err := sleepCtx(ctx, g.opts.RoundPause); err != nil {
				return nil, err
			}
		}
	}
	if len(questions) < targetCount {
		return nil, fmt.Errorf("failed to generate enough unique questions: %d/%d", len(questions), targetCount)
	}
	return questions[:targetCount], nil
}

func questionUserInput(existing []string, contextText string, remaining int) string {
	listed := "(なし)"
	if len(existing) > 0 {
		var b strings.Builder
		for i, q := range existing {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString("- ")
			b.WriteString(q)
		}
		listed = b.String()
	}
	return fmt.Sprintf(
		"不足件数: %d\n以下の資料抜粋を根拠に、重複しない質問を%d件生成してください。\n既存質問と同じ内容や言い換えに近いものは避けてください。\n\n既存質問:\n%s\n\n資料抜粋:\n%s",
		remaining, remaining, listed, contextText)
}

var (
	questionPrefixRe = regexp.MustCompile(`^\s*(?:Q\s*\d+\s*[:：.]|\d+\s*[.)\]:：、]|[-*・]+)\s*`)
	whitespaceRe     = regexp.MustCompile(`\s+`)
)

// ParseQuestions extracts one question per non-empty line, stripping
// numbering and bullet prefixes plus surrounding quotes.
func ParseQuestions(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		q := normalizeQuestionLine(line)
		if q != "" {
			out = append(out, q)
		}
	}
	return out
}

func normalizeQuestionLine(line string) string {
	text := strings.TrimSpace(line)
	if text == "" {
		return ""
	}
	text = questionPrefixRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	text = strings.Trim(text, `"'`)
	return strings.TrimSpace(text)
}

// questionKey canonicalizes a question for deduplication: whitespace
// removed, lowercased.
func questionKey(q string) string {
	return strings.ToLower(whitespaceRe.ReplaceAllString(q, ""))
}
