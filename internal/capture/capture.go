// Package capture is the process-wide error funnel. Everything that
// fails outside a local error path ends up here: the handler records the
// error, throttles user-facing surfaces, and drives the declarative
// auto-recovery policy.
package capture

import (
	"sync"
	"time"

	"github.com/quizdesk/quizdesk/internal/apperr"
	"github.com/quizdesk/quizdesk/internal/errlog"
)

// Notifier surfaces an error to the user. Severity governs presentation:
// critical notifications stick around, lower grades fade.
type Notifier interface {
	Notify(severity apperr.Severity, message string)
}

// Hooks are the auto-recovery actions the handler may schedule.
type Hooks struct {
	// Reauthenticate routes to the login surface. Fired 2s after an
	// authentication error.
	Reauthenticate func()

	// Online reports current connectivity. Consulted before a reload.
	Online func() bool

	// Reload refreshes the active view. Fired when connectivity returns
	// within the window after a recoverable network error.
	Reload func()
}

// Handler is the global error handler. One per process.
type Handler struct {
	mu sync.Mutex

	log      *errlog.Logger
	notifier Notifier
	hooks    Hooks

	suppressed   map[string]struct{}
	lastSurface  time.Time
	sessionCount int

	// tunables, fixed in production and shortened in tests
	throttle      time.Duration
	maxPerSession int
	reauthDelay   time.Duration
	reloadWindow  time.Duration

	timers []*time.Timer
}

// New creates a Handler with the production policy: at most one surface
// per second and at most 100 per session.
func New(log *errlog.Logger, notifier Notifier, hooks Hooks) *Handler {
	return &Handler{
		log:           log,
		notifier:      notifier,
		hooks:         hooks,
		suppressed:    make(map[string]struct{}),
		throttle:      time.Second,
		maxPerSession: 100,
		reauthDelay:   2 * time.Second,
		reloadWindow:  5 * time.Second,
	}
}

// Handle records an error and, subject to the rate limit and suppression
// set, surfaces it and schedules recovery. The error is always logged;
// only the user-facing surface is throttled.
func (h *Handler) Handle(err error) *apperr.Error {
	appErr := apperr.Transform(err)
	if appErr == nil {
		return nil
	}

	h.log.Error("global error caught", appErr)

	if h.shouldSurface(appErr) && h.notifier != nil {
		h.notifier.Notify(appErr.Severity, appErr.UserMessage)
	}

	h.autoRecover(appErr)
	return appErr
}

// shouldSurface applies suppression, the throttle window, and the
// session cap, consuming one surface slot when it returns true.
func (h *Handler) shouldSurface(appErr *apperr.Error) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.suppressed[appErr.Key()]; ok {
		return false
	}
	now := time.Now()
	if now.Sub(h.lastSurface) < h.throttle {
		return false
	}
	if h.sessionCount >= h.maxPerSession {
		return false
	}

	h.lastSurface = now
	h.sessionCount++
	return true
}

// autoRecover applies the declarative recovery policy.
func (h *Handler) autoRecover(appErr *apperr.Error) {
	switch appErr.Type {
	case apperr.AuthenticationError:
		if h.hooks.Reauthenticate != nil {
			h.schedule(h.reauthDelay, h.hooks.Reauthenticate)
		}
	case apperr.NetworkError:
		if appErr.Recoverable && h.hooks.Reload != nil {
			h.schedule(h.reloadWindow, func() {
				if h.hooks.Online == nil || h.hooks.Online() {
					h.hooks.Reload()
				}
			})
		}
	}
}

func (h *Handler) schedule(d time.Duration, fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.timers = append(h.timers, time.AfterFunc(d, fn))
}

// Suppress silently drops future surfaces of the given (type, message).
func (h *Handler) Suppress(t apperr.Type, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.suppressed[string(t)+":"+message] = struct{}{}
}

// Unsuppress re-enables surfaces of the given (type, message).
func (h *Handler) Unsuppress(t apperr.Type, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.suppressed, string(t)+":"+message)
}

// SessionErrorCount returns how many surfaces this session has emitted.
func (h *Handler) SessionErrorCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessionCount
}

// Reset cancels pending recovery timers and clears rate-limit state.
// Intended for shutdown and test isolation.
func (h *Handler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, t := range h.timers {
		t.Stop()
	}
	h.timers = nil
	h.sessionCount = 0
	h.lastSurface = time.Time{}
	h.suppressed = make(map[string]struct{})
}

// setPolicy shortens the rate-limit and recovery tunables. Test hook.
func (h *Handler) setPolicy(throttle time.Duration, maxPerSession int, reauthDelay, reloadWindow time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.throttle = throttle
	h.maxPerSession = maxPerSession
	h.reauthDelay = reauthDelay
	h.reloadWindow = reloadWindow
}
