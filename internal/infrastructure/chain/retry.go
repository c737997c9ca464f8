package chain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flarekit/internal/pkg/metrics"

	"go.uber.org/zap"
)

// nonTransientMarkers are node responses that describe the chain's or the
// request's state rather than a delivery problem. Retrying them cannot help
// and must never mask a revert as success.
var nonTransientMarkers = []string{
	"execution reverted",
	"insufficient funds",
	"nonce too low",
	"nonce too high",
	"replacement transaction underpriced",
	"transaction underpriced",
	"already known",
	"invalid sender",
	"intrinsic gas too low",
	"gas required exceeds allowance",
	"max fee per gas less than block base fee",
	// JSON-RPC protocol errors: parse error, invalid request/method/params.
	"-32700", "-32600", "-32601", "-32602",
}

// isTransient reports whether an RPC failure is worth retrying. Network
// faults, timeouts and overloaded-node responses are transient; everything
// matching nonTransientMarkers is surfaced immediately.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range nonTransientMarkers {
		if strings.Contains(msg, marker) {
			return false
		}
	}
	return true
}

// withRetry runs fn up to the configured attempt budget, bounding each
// attempt with the per-RPC timeout and waiting the fixed retry delay between
// attempts. Non-transient failures propagate immediately; cancellation of the
// parent context stops the loop.
func (c *client) withRetry(ctx context.Context, op string, fn func(context.Context) error) error {
	attempts := c.settings.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		metrics.RPCAttempts.WithLabelValues(op).Inc()
		attemptCtx := ctx
		var cancel context.CancelFunc
		if c.settings.RPCTimeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, c.settings.RPCTimeout)
		}
		start := time.Now()
		err := fn(attemptCtx)
		metrics.RPCDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		if cancel != nil {
			cancel()
		}
		if err == nil {
			return nil
		}
		lastErr = err

		if !isTransient(err) {
			return err
		}
		if attempt == attempts {
			break
		}

		metrics.RPCRetries.WithLabelValues(op).Inc()
		c.log.Warn("transient RPC failure, retrying",
			zap.String("op", op),
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", attempts),
			zap.Error(err))

		if c.settings.RetryDelay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.settings.RetryDelay):
			}
		} else if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return fmt.Errorf("%s failed after %d attempt(s): %w", op, attempts, lastErr)
}
