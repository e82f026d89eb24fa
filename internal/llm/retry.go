package llm

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// retrying re-issues a narrative request when the provider fails in a way
// a second attempt can fix.
type retrying struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry wraps p with cfg's retry policy. Narrative calls are single
// shot by default, so MaxAttempts <= 1 returns p unchanged.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts <= 1 {
		return p
	}
	return &retrying{inner: p, cfg: cfg}
}

func (r *retrying) Generate(ctx context.Context, req Request) (*Response, error) {
	invalidSeen := false
	attempt := func() (*Response, error) {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		return nil, classify(err, &invalidSeen)
	}

	resp, err := backoff.Retry(ctx, attempt,
		backoff.WithBackOff(r.schedule()),
		backoff.WithMaxTries(uint(r.cfg.MaxAttempts)),
		backoff.WithMaxElapsedTime(0),
	)
	return resp, unwrapRetry(err)
}

func (r *retrying) ModelID() string {
	return r.inner.ModelID()
}

func (r *retrying) schedule() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.cfg.InitialWait
	b.MaxInterval = r.cfg.MaxWait
	b.Multiplier = max(r.cfg.Multiplier, 1)
	b.RandomizationFactor = 0.2
	return b
}

// classify maps a provider error onto the retry vocabulary. Cancellation
// and truncation stop at once, an unusable reply earns one more try, and a
// rate limit waits as long as the provider asked.
func classify(err error, invalidSeen *bool) error {
	switch Kind(err) {
	case "canceled", "timeout", "max-tokens":
		return backoff.Permanent(err)
	case "invalid-response":
		if *invalidSeen {
			return backoff.Permanent(err)
		}
		*invalidSeen = true
	case "rate-limit":
		var rl *ErrRateLimit
		if errors.As(err, &rl) && rl.RetryAfter > 0 {
			return &waitThen{wait: rl.RetryAfter, err: err}
		}
	}
	return err
}

// waitThen carries the provider's Retry-After hint alongside the error it
// came with.
type waitThen struct {
	wait time.Duration
	err  error
}

func (w *waitThen) Error() string { return w.err.Error() }

func (w *waitThen) Unwrap() []error {
	return []error{w.err, &backoff.RetryAfterError{Duration: w.wait}}
}

// unwrapRetry strips the wrappers classify added so callers see the
// provider's own error.
func unwrapRetry(err error) error {
	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		err = perm.Err
	}
	var w *waitThen
	if errors.As(err, &w) {
		err = w.err
	}
	return err
}
