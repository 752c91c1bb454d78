// Package boundary implements the per-region error boundary: a small
// state machine that captures descendant failures, offers recovery
// actions, and retries with a capped exponential delay.
package boundary

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quizdesk/quizdesk/internal/apperr"
	"github.com/quizdesk/quizdesk/internal/errlog"
)

// State is the boundary lifecycle state.
type State int

const (
	StateOK State = iota
	StateCapturing
	StateRetrying
	StateFatal
)

func (s State) String() string {
	switch s {
	case StateOK:
		return "ok"
	case StateCapturing:
		return "capturing"
	case StateRetrying:
		return "retrying"
	case StateFatal:
		return "fatal"
	}
	return "unknown"
}

const (
	baseRetryDelay = time.Second
	maxRetryDelay  = 5 * time.Second
)

// Boundary guards one protected region. Create one per screen; Close it
// when the region unmounts so no retry timer fires into torn-down state.
type Boundary struct {
	mu sync.Mutex

	name       string
	state      State
	err        *apperr.Error
	errID      string
	retryCount int
	maxRetries int

	onRetry func()
	log     *errlog.Logger
	timer   *time.Timer
}

// New creates a Boundary. onRetry re-runs the region's work after the
// retry delay elapses.
func New(name string, maxRetries int, log *errlog.Logger, onRetry func()) *Boundary {
	return &Boundary{
		name:       name,
		state:      StateOK,
		maxRetries: maxRetries,
		onRetry:    onRetry,
		log:        log,
	}
}

// Capture records a descendant failure and moves to capturing, or
// directly to fatal when the error is non-recoverable or the retry
// budget is spent.
func (b *Boundary) Capture(err error) *apperr.Error {
	appErr := apperr.Transform(err)

	b.mu.Lock()
	b.err = appErr
	b.errID = uuid.NewString()
	if !appErr.Recoverable || b.retryCount >= b.maxRetries {
		b.state = StateFatal
	} else {
		b.state = StateCapturing
	}
	b.mu.Unlock()

	b.log.Error("error captured by boundary "+b.name, appErr)
	return appErr
}

// Retry schedules a re-run after min(1s·2^n, 5s) where n is the number
// of retries already spent. No-op unless the boundary is capturing.
func (b *Boundary) Retry() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != StateCapturing {
		return false
	}

	delay := baseRetryDelay << b.retryCount
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}

	b.state = StateRetrying
	b.retryCount++
	b.timer = time.AfterFunc(delay, func() {
		b.mu.Lock()
		if b.state != StateRetrying {
			b.mu.Unlock()
			return
		}
		b.state = StateOK
		b.err = nil
		b.errID = ""
		b.mu.Unlock()

		if b.onRetry != nil {
			b.onRetry()
		}
	})
	return true
}

// Dismiss drops the captured error and returns to ok without retrying.
func (b *Boundary) Dismiss() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopTimer()
	b.state = StateOK
	b.err = nil
	b.errID = ""
}

// Close cancels any pending retry timer. Must be called on unmount.
func (b *Boundary) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopTimer()
}

func (b *Boundary) stopTimer() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

// Snapshot reports the current state and captured error.
func (b *Boundary) Snapshot() (State, *apperr.Error, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state, b.err, b.retryCount
}
