package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/vietddude/payout/internal/transfer/metrics"
)

// FailoverClient implements Client over an ordered list of providers.
// Each operation is retried with backoff on its current provider, then
// handed to the next one on provider-level failures.
type FailoverClient struct {
	chain     string
	providers []Provider
	retry     RetryConfig
	log       *slog.Logger
}

// NewFailoverClient creates a client for a chain with the given providers.
func NewFailoverClient(chain string, providers []Provider, retry RetryConfig) *FailoverClient {
	return &FailoverClient{
		chain:     chain,
		providers: providers,
		retry:     retry,
		log:       slog.Default().With("component", "rpc", "chain", chain),
	}
}

// Chain returns the chain name this client serves.
func (c *FailoverClient) Chain() string {
	return c.chain
}

// Request executes the operation, walking providers until one succeeds.
func (c *FailoverClient) Request(ctx context.Context, op Operation) (json.RawMessage, error) {
	if len(c.providers) == 0 {
		return nil, fmt.Errorf("no providers for chain %s", c.chain)
	}

	var lastErr error
	for _, p := range c.providers {
		if !p.IsAvailable() {
			continue
		}

		result, err := c.executeWithRetry(ctx, p, op)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if ClassifyError(err) == ActionFatal {
			return nil, fmt.Errorf("provider %s: %w", p.GetName(), err)
		}

		c.log.Warn("provider failed, trying next",
			"provider", p.GetName(),
			"endpoint", op.Endpoint,
			"error", err)
	}

	// All providers skipped or failed; retry the first one regardless of
	// its health flag rather than returning without an attempt.
	if lastErr == nil {
		result, err := c.executeWithRetry(ctx, c.providers[0], op)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("all providers failed: %w", lastErr)
}

func (c *FailoverClient) executeWithRetry(ctx context.Context, p Provider, op Operation) (json.RawMessage, error) {
	var lastErr error

	for attempt := 0; attempt < c.retry.MaxAttempts; attempt++ {
		start := time.Now()
		result, err := p.Execute(ctx, op)
		latency := time.Since(start)

		metrics.RPCCallsTotal.WithLabelValues(c.chain, p.GetName(), op.Endpoint).Inc()
		metrics.RPCLatency.WithLabelValues(c.chain, p.GetName(), op.Endpoint).Observe(latency.Seconds())

		if err == nil {
			return result, nil
		}
		lastErr = err

		action := ClassifyError(err)
		metrics.RPCErrorsTotal.WithLabelValues(c.chain, p.GetName(), errorType(action)).Inc()

		if action != ActionRetry {
			return nil, err
		}
		if attempt == c.retry.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(calculateBackoff(attempt, c.retry)):
		}
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", c.retry.MaxAttempts, lastErr)
}

func errorType(action ErrorAction) string {
	switch action {
	case ActionFailover:
		return "failover"
	case ActionFatal:
		return "fatal"
	default:
		return "retryable"
	}
}

// Close closes all providers.
func (c *FailoverClient) Close() error {
	var firstErr error
	for _, p := range c.providers {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
