// Package embedding provides the pacing and retry decorator shared by
// every embedding provider adapter.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/mapleline/policyscan/internal/core/domain"
	"github.com/mapleline/policyscan/internal/core/ports/driven"
	"github.com/mapleline/policyscan/internal/logger"
)

// Ensure PacedService implements the interface.
var _ driven.EmbeddingService = (*PacedService)(nil)

// Default retry behaviour. Providers enforce per-minute quotas, so
// calls are paced apart and failures wait long enough for the quota
// window to move.
const (
	DefaultMaxRetries     = 3
	DefaultRetryDelay     = 5 * time.Second
	DefaultPacingInterval = 1 * time.Second
)

// RetryConfig configures the pacing and retry decorator.
type RetryConfig struct {
	// MaxRetries is how many times a failed call is retried
	// (default 3, so 4 attempts total).
	MaxRetries int

	// RetryDelay is the wait between attempts. Rate-limit failures
	// scale it linearly with the retry count (default 5s).
	RetryDelay time.Duration

	// PacingInterval is the minimum spacing between calls to the
	// provider, applied before every attempt (default 1s, negative
	// disables pacing).
	PacingInterval time.Duration
}

func (c RetryConfig) withDefaults() RetryConfig {
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	if c.PacingInterval == 0 {
		c.PacingInterval = DefaultPacingInterval
	}
	return c
}

// PacedService wraps an embedding provider with call pacing and
// bounded retries. Exhausting the retries fails the call with
// domain.ErrEmbeddingExhausted wrapping the last provider error.
type PacedService struct {
	inner   driven.EmbeddingService
	cfg     RetryConfig
	limiter *rate.Limiter

	// sleep is replaceable for tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPacedService wraps inner with pacing and retry behaviour.
func NewPacedService(inner driven.EmbeddingService, cfg RetryConfig) *PacedService {
	cfg = cfg.withDefaults()

	limit := rate.Inf
	if cfg.PacingInterval > 0 {
		limit = rate.Every(cfg.PacingInterval)
	}

	return &PacedService{
		inner:   inner,
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, 1),
		sleep:   sleepContext,
	}
}

// Embed calls the provider, pacing every attempt and retrying failures.
func (s *PacedService) Embed(ctx context.Context, text string) ([]float32, error) {
	var lastErr error

	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.retryDelay(lastErr, attempt)
			logger.Warn("Embedding attempt %d/%d failed, retrying in %s: %v",
				attempt, s.cfg.MaxRetries+1, delay, lastErr)
			if err := s.sleep(ctx, delay); err != nil {
				return nil, err
			}
		}

		// Pacing applies to every attempt, including the first.
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		embedding, err := s.inner.Embed(ctx, text)
		if err == nil {
			return embedding, nil
		}
		if ctx.Err() != nil {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%w after %d attempts: %w",
		domain.ErrEmbeddingExhausted, s.cfg.MaxRetries+1, lastErr)
}

// retryDelay scales the wait linearly with the retry count for
// rate-limit failures, giving the quota window time to move. Other
// failures wait the fixed delay.
func (s *PacedService) retryDelay(err error, retryCount int) time.Duration {
	if errors.Is(err, domain.ErrRateLimited) {
		return s.cfg.RetryDelay * time.Duration(retryCount)
	}
	return s.cfg.RetryDelay
}

// Dimensions returns the embedding vector size.
func (s *PacedService) Dimensions() int {
	return s.inner.Dimensions()
}

// ModelName returns the name of the embedding model being used.
func (s *PacedService) ModelName() string {
	return s.inner.ModelName()
}

// Ping validates the underlying service is reachable.
func (s *PacedService) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

// Close releases the underlying service's resources.
func (s *PacedService) Close() error {
	return s.inner.Close()
}

// sleepContext waits for d or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
