// Package idle keeps a process alive without doing any work.
package idle

import (
	"context"
	"time"
)

// Interval bounds a single wait. The loop in Park re-arms the wait every time
// it returns, so the value only affects how often the runtime wakes up.
var Interval = time.Hour

// Park blocks until ctx is done. With a context that is never cancelled it
// never returns and the process lives until the operating system ends it.
func Park(ctx context.Context) error {
	timer := time.NewTimer(Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			timer.Reset(Interval)
		}
	}
}
