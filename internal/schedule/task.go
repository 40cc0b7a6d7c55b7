package schedule

import (
	"context"
	"time"
)

// Body is one run of a scheduled task.
type Body func(ctx context.Context)

// FixedDelay runs body, waits delay after it returns, and repeats.
// The token is checked only before each run; a cancelled token also cuts
// the wait short so the goroutine exits promptly. Total cycle time is the
// body's duration plus delay, so a slow body slows the whole cadence.
//
// FixedDelay returns when the token is cancelled or ctx is done.
func FixedDelay(ctx context.Context, token *Token, delay time.Duration, body Body) {
	for {
		if token.Cancelled() || ctx.Err() != nil {
			return
		}

		body(ctx)

		if !wait(ctx, token, delay) {
			return
		}
	}
}

// wait sleeps for d and reports false if it was woken by cancellation.
func wait(ctx context.Context, token *Token, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-token.Done():
		return false
	case <-ctx.Done():
		return false
	}
}

// FixedRate runs body every interval, starting one interval after the
// call. Ticks that fire while body is still running are dropped, so runs
// never overlap.
//
// FixedRate returns when the token is cancelled or ctx is done.
func FixedRate(ctx context.Context, token *Token, interval time.Duration, body Body) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if token.Cancelled() {
				return
			}
			body(ctx)
		case <-token.Done():
			return
		case <-ctx.Done():
			return
		}
	}
}
