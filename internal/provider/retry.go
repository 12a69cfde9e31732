package provider

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/Cyclone1070/repoqa/internal/tool"
)

const retryMaxDelay = 30 * time.Second

// RetryModel wraps a Model with client-side pacing and retries of
// retryable ProviderErrors.
type RetryModel struct {
	model      Model
	maxRetries int
	baseDelay  time.Duration
	limiter    *rate.Limiter

	// sleep is replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRetryModel wraps model. requestsPerMinute <= 0 disables pacing.
func NewRetryModel(model Model, maxRetries int, baseDelay time.Duration, requestsPerMinute int) *RetryModel {
	m := &RetryModel{
		model:      model,
		maxRetries: max(maxRetries, 0),
		baseDelay:  baseDelay,
		sleep:      sleepContext,
	}
	if requestsPerMinute > 0 {
		m.limiter = rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60), 1)
	}
	return m
}

func (m *RetryModel) Generate(ctx context.Context, messages []Message, tools []tool.Declaration) (*Message, error) {
	var lastErr error
	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		if attempt > 0 {
			if err := m.sleep(ctx, m.backoff(attempt, lastErr)); err != nil {
				return nil, err
			}
		}
		if m.limiter != nil {
			if err := m.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		msg, err := m.model.Generate(ctx, messages, tools)
		if err == nil {
			return msg, nil
		}
		if !IsRetryable(err) || ctx.Err() != nil {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("max retries (%d) exceeded: %w", m.maxRetries, lastErr)
}

// backoff doubles the base delay per attempt up to retryMaxDelay. A
// server-provided Retry-After takes precedence.
func (m *RetryModel) backoff(attempt int, err error) time.Duration {
	if after := GetRetryAfter(err); after != nil {
		return *after
	}
	delay := m.baseDelay * time.Duration(1<<uint(attempt-1))
	if delay > retryMaxDelay || delay < 0 {
		delay = retryMaxDelay
	}
	return delay
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
