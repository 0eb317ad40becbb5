package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// WaitReady blocks until ping succeeds, retrying up to attempts times with a
// fixed delay between tries. It runs once at startup before the HTTP listener
// opens; per-request operations never retry. The returned error means the
// retry budget is exhausted and the process must not serve traffic.
func WaitReady(ctx context.Context, ping func(context.Context) error, attempts int, delay time.Duration, l *zap.Logger) error {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 1; i <= attempts; i++ {
		if lastErr = ping(ctx); lastErr == nil {
			l.Info("database reachable", zap.Int("attempt", i))
			return nil
		}
		l.Warn("waiting for database",
			zap.Int("attempt", i),
			zap.Int("max_attempts", attempts),
			zap.Error(lastErr),
		)
		if i == attempts {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("database not reachable after %d attempts: %w", attempts, lastErr)
}
