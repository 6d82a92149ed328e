package util

import (
	"context"
	"time"
)

// Sleep pauses for d, returning early with the context's error when it is
// canceled first. A non-positive d returns immediately. Mock services use
// this to emulate network latency.
func Sleep(ctx context.Context, d time.Duration) error {
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
