package capture

import (
	"fmt"
	"strings"

	"github.com/quizdesk/quizdesk/internal/apperr"
)

// Recovered runs fn and converts a panic into a handled UNEXPECTED_ERROR
// instead of crashing the process. The panic's severity is derived from
// its message the same way runtime errors are graded everywhere else.
func (h *Handler) Recovered(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprint(r)
			appErr := apperr.New("panic: "+msg, apperr.Options{
				Type:        apperr.UnexpectedError,
				Severity:    severityFromMessage(msg),
				Recoverable: apperr.Bool(false),
			})
			h.Handle(appErr)
			err = appErr
		}
	}()
	if err := fn(); err != nil {
		return h.Handle(err)
	}
	return nil
}

// Go runs fn on its own goroutine; a returned error or panic is captured
// as UNEXPECTED_ERROR rather than silently lost.
func (h *Handler) Go(fn func() error) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				msg := fmt.Sprint(r)
				h.Handle(apperr.New("panic in background task: "+msg, apperr.Options{
					Type:        apperr.UnexpectedError,
					Severity:    severityFromMessage(msg),
					Recoverable: apperr.Bool(false),
				}))
			}
		}()
		if err := fn(); err != nil {
			h.Handle(apperr.New("background task failed: "+err.Error(), apperr.Options{
				Type:        apperr.UnexpectedError,
				Severity:    apperr.SeverityHigh,
				Original:    err,
				Recoverable: apperr.Bool(false),
			}))
		}
	}()
}

// severityFromMessage grades a runtime failure by its message.
func severityFromMessage(msg string) apperr.Severity {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "out of memory") || strings.Contains(lower, "stack overflow"):
		return apperr.SeverityCritical
	case strings.Contains(lower, "network") || strings.Contains(lower, "fetch"):
		return apperr.SeverityHigh
	default:
		return apperr.SeverityMedium
	}
}
