package orchestrators

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Deferred is a form submission held back by an artificial delay. The commit
// callback runs exactly once when the delay elapses; cancelling first means
// the effect is never applied. There is no rollback because nothing was
// committed to roll back.
type Deferred struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu        sync.Mutex
	committed bool
}

// Defer schedules commit to run after delay. The returned task can be
// cancelled until the moment the delay elapses; commit and Cancel never
// both take effect.
// POST: commit runs after delay unless Cancel or ctx cancellation wins
func Defer(ctx context.Context, delay time.Duration, commit func()) *Deferred {
	ctx, cancel := context.WithCancel(ctx)
	d := &Deferred{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(d.done)
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			slog.Info("deferred_event", "event", "submission_abandoned")
		case <-timer.C:
			// The select picks pseudo-randomly when both channels are
			// ready, so a cancellation that landed just before the timer
			// fired must still win: a returned Cancel never commits.
			if ctx.Err() != nil {
				slog.Info("deferred_event", "event", "submission_abandoned")
				return
			}
			d.mu.Lock()
			d.committed = true
			d.mu.Unlock()
			commit()
		}
	}()

	return d
}

// Cancel abandons the submission. A no-op once the commit has run.
func (d *Deferred) Cancel() {
	d.cancel()
}

// Wait blocks until the task has either committed or been abandoned.
func (d *Deferred) Wait() {
	<-d.done
}

// Committed reports whether the effect was applied.
func (d *Deferred) Committed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.committed
}
