package ai

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"olivia/pkg/logging"
	"olivia/pkg/metrics"
)

type BreakerConfig struct {
	MaxRequests      uint32        // probes allowed while half-open
	Interval         time.Duration // closed-state count reset
	Timeout          time.Duration // open -> half-open
	FailureThreshold uint32        // consecutive failures that trip it
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{MaxRequests: 1, Interval: time.Minute, Timeout: 30 * time.Second, FailureThreshold: 5}
}

type breakerClient struct {
	next Client
	cb   *gobreaker.CircuitBreaker[string]
}

// WithBreaker guards next with a circuit breaker and records call latency.
// ErrNotConfigured and caller cancellation do not count as failures.
func WithBreaker(next Client, cfg BreakerConfig) Client {
	name := "llm_" + next.Name()
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotConfigured) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.LLMBreakerState.WithLabelValues(name).Set(float64(to))
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
		},
	}
	metrics.LLMBreakerState.WithLabelValues(name).Set(float64(gobreaker.StateClosed))
	return &breakerClient{next: next, cb: gobreaker.NewCircuitBreaker[string](settings)}
}

func (b *breakerClient) Name() string { return b.next.Name() }

func (b *breakerClient) Chat(ctx context.Context, system string, msgs []Message) (string, error) {
	start := time.Now()
	out, err := b.cb.Execute(func() (string, error) {
		return b.next.Chat(ctx, system, msgs)
	})
	metrics.LLMLatency.WithLabelValues(b.next.Name()).Observe(time.Since(start).Seconds())
	return out, err
}

// State exposes the breaker state for health checks.
func State(c Client) string {
	if b, ok := c.(*breakerClient); ok {
		return b.cb.State().String()
	}
	return "none"
}
