package generator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Mamo1031/rag-evaluator/internal/domain"
	"github.com/Mamo1031/rag-evaluator/internal/index"
)

// fakeCompleter scripts responses and errors for successive calls.
type fakeCompleter struct {
	replies []string
	errs    []error
	calls   int
	inputs  []string
}

func (f *fakeCompleter) Complete(ctx context.Context, userInput, template string) (string, error) {
	i := f.calls
	f.calls++
	f.inputs = append(f.inputs, userInput)
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	reply := ""
	if i < len(f.replies) {
		reply = f.replies[i]
	}
	return reply, err
}

func testIndex() *index.Index {
	return index.Build([]domain.RawChunk{
		{Source: "guide.md", Text: "The office opens at nine."},
		{Source: "rules.md", Text: "Visitors must sign in."},
	})
}

func fastOpts() Options {
	return Options{TopK: 2, MaxRetries: 1, Pause: time.Millisecond}
}

func TestAnswer_IncludesQuestionAndContext(t *testing.T) {
	fake := &fakeCompleter{replies: []string{"回答です。"}}
	a := NewAnswerer(fake, testIndex(), fastOpts(), nil)

	got, err := a.Answer(context.Background(), "When does the office open?")
	if err != nil {
		t.Fatal(err)
	}
	if got != "回答です。" {
		t.Errorf("Answer = %q", got)
	}
	if len(fake.inputs) != 1 {
		t.Fatalf("expected 1 completion call, got %d", len(fake.inputs))
	}
	input := fake.inputs[0]
	if !strings.Contains(input, "When does the office open?") {
		t.Error("user input should contain the question")
	}
	if !strings.Contains(input, "[1] guide.md") {
		t.Errorf("user input should contain formatted context, got %q", input)
	}
}

func TestAnswer_TruncatesToThreeSentences(t *testing.T) {
	fake := &fakeCompleter{replies: []string{"一。二。三。四。五。"}}
	a := NewAnswerer(fake, testIndex(), fastOpts(), nil)

	got, err := a.Answer(context.Background(), "q")
	if err != nil {
		t.Fatal(err)
	}
	if got != "一。二。三。" {
		t.Errorf("expected three sentences, got %q", got)
	}
}

func TestAnswer_EmptyReply(t *testing.T) {
	fake := &fakeCompleter{replies: []string{"   "}}
	a := NewAnswerer(fake, testIndex(), fastOpts(), nil)

	got, err := a.Answer(context.Background(), "q")
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("blank reply should yield empty answer, got %q", got)
	}
}

func TestAnswer_RetryExhaustion(t *testing.T) {
	fail := errors.New("connection refused")
	fake := &fakeCompleter{errs: []error{fail}}
	a := NewAnswerer(fake, testIndex(), fastOpts(), nil)

	_, err := a.Answer(context.Background(), "q")
	if err == nil {
		t.Fatal("expected error after retry exhaustion")
	}
	if !errors.Is(err, fail) {
		t.Errorf("exhaustion should wrap the last transport error, got %v", err)
	}
	if !strings.Contains(err.Error(), "answer generation") {
		t.Errorf("error should name the failing stage, got %v", err)
	}
}

func TestAnswerAll_OrderAndCount(t *testing.T) {
	fake := &fakeCompleter{replies: []string{"答え一。", "答え二。"}}
	a := NewAnswerer(fake, testIndex(), fastOpts(), nil)

	answers, err := a.AnswerAll(context.Background(), []string{"q1", "q2"})
	if err != nil {
		t.Fatal(err)
	}
	if len(answers) != 2 || answers[0] != "答え一。" || answers[1] != "答え二。" {
		t.Errorf("AnswerAll = %v", answers)
	}
}

func TestAnswerAll_FailedQuestionDoesNotAbortBatch(t *testing.T) {
	fake := &fakeCompleter{
		replies: []string{"", "答え二。"},
		errs:    []error{errors.New("boom"), nil},
	}
	a := NewAnswerer(fake, testIndex(), fastOpts(), nil)

	answers, err := a.AnswerAll(context.Background(), []string{"q1", "q2"})
	if err != nil {
		t.Fatal(err)
	}
	if len(answers) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(answers))
	}
	if answers[0] != "" {
		t.Errorf("failed question should yield empty answer, got %q", answers[0])
	}
	if answers[1] != "答え二。" {
		t.Errorf("batch should continue after a failure, got %q", answers[1])
	}
}

func TestTruncateSentences(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"一。二。三。四。", "一。二。三。"},
		{"一。二。", "一。二。"},
		{"no full stop here", "no full stop here"},
		{"一。二。三。", "一。二。三。"},
	}
	for _, tt := range tests {
		if got := truncateSentences(tt.in, 3); got != tt.want {
			t.Errorf("truncateSentences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRetryDelay_CappedLinear(t *testing.T) {
	if retryDelay(1) != 2*time.Second {
		t.Errorf("attempt 1 delay = %v", retryDelay(1))
	}
	if retryDelay(2) != 4*time.Second {
		t.Errorf("attempt 2 delay = %v", retryDelay(2))
	}
	if retryDelay(3) != 5*time.Second {
		t.Errorf("attempt 3 delay should cap at 5s, got %v", retryDelay(3))
	}
}
