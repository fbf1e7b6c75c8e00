package generator

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Mamo1031/rag-evaluator/internal/domain"
)

// completeWithRetry issues one completion call with bounded retries. Backoff
// is linear in the attempt number and capped at 5s. Only the exhaustion of
// all attempts is surfaced, wrapped with the failing stage.
func completeWithRetry(ctx context.Context, client domain.Completer, userInput, template string, maxRetries int, stage string, log *zap.Logger) (string, error) {
	if maxRetries <= 0 {
		maxRetries = 1
	}
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		text, err := client.Complete(ctx, userInput, template)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		if attempt < maxRetries {
			delay := retryDelay(attempt)
			log.Warn("chat request failed, retrying",
				zap.String("stage", stage),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(err))
			if err := sleepCtx(ctx, delay); err != nil {
				break
			}
		}
	}
	return "", fmt.Errorf("%s: chat request failed after %d attempts: %w", stage, maxRetries, lastErr)
}

// retryDelay is 2s per attempt, capped at 5s.
func retryDelay(attempt int) time.Duration {
	d := time.Duration(2*attempt) * time.Second
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
