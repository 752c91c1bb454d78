package boundary

import (
	"errors"
	"testing"
	"time"

	"github.com/quizdesk/quizdesk/internal/apperr"
	"github.com/quizdesk/quizdesk/internal/errlog"
)

func newTestBoundary(maxRetries int, onRetry func()) *Boundary {
	log := errlog.New(errlog.Config{Level: errlog.LevelDebug})
	return New("TestRegion", maxRetries, log, onRetry)
}

func recoverableErr(msg string) *apperr.Error {
	return apperr.New(msg, apperr.Options{
		Type:        apperr.QuizError,
		Recoverable: apperr.Bool(true),
	})
}

func TestCaptureRecoverable(t *testing.T) {
	b := newTestBoundary(3, nil)
	t.Cleanup(b.Close)

	appErr := b.Capture(recoverableErr("fetch failed"))
	if appErr == nil {
		t.Fatal("expected the classified error back")
	}

	state, err, retries := b.Snapshot()
	if state != StateCapturing {
		t.Errorf("expected capturing, got %s", state)
	}
	if err == nil || err.Message != "fetch failed" {
		t.Errorf("unexpected captured error: %+v", err)
	}
	if retries != 0 {
		t.Errorf("expected 0 retries spent, got %d", retries)
	}
}

func TestCaptureNonRecoverableGoesFatal(t *testing.T) {
	b := newTestBoundary(3, nil)
	t.Cleanup(b.Close)

	b.Capture(apperr.New("denied", apperr.Options{
		Type:        apperr.AuthorizationError,
		Recoverable: apperr.Bool(false),
	}))

	state, _, _ := b.Snapshot()
	if state != StateFatal {
		t.Errorf("expected fatal, got %s", state)
	}
}

func TestCaptureClassifiesPlainErrors(t *testing.T) {
	b := newTestBoundary(3, nil)
	t.Cleanup(b.Close)

	appErr := b.Capture(errors.New("request timeout while loading"))
	if appErr.Type != apperr.TimeoutError {
		t.Errorf("expected TIMEOUT_ERROR, got %s", appErr.Type)
	}
}

func TestRetryRunsRegionAgain(t *testing.T) {
	ran := make(chan struct{}, 1)
	b := newTestBoundary(3, func() { ran <- struct{}{} })
	t.Cleanup(b.Close)

	b.Capture(recoverableErr("fetch failed"))
	if !b.Retry() {
		t.Fatal("expected retry to schedule")
	}

	state, _, retries := b.Snapshot()
	if state != StateRetrying || retries != 1 {
		t.Fatalf("expected retrying with 1 spent, got %s/%d", state, retries)
	}

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("expected the retry callback to fire")
	}

	state, err, _ := b.Snapshot()
	if state != StateOK || err != nil {
		t.Errorf("expected clean state after retry, got %s err=%v", state, err)
	}
}

func TestRetryOnlyWhileCapturing(t *testing.T) {
	b := newTestBoundary(3, nil)
	t.Cleanup(b.Close)

	if b.Retry() {
		t.Error("retry from ok must be a no-op")
	}

	b.Capture(apperr.New("denied", apperr.Options{
		Type:        apperr.AuthenticationError,
		Recoverable: apperr.Bool(false),
	}))
	if b.Retry() {
		t.Error("retry from fatal must be a no-op")
	}
}

func TestRetryBudgetExhaustionGoesFatal(t *testing.T) {
	b := newTestBoundary(1, nil)
	t.Cleanup(b.Close)

	b.Capture(recoverableErr("one"))
	if !b.Retry() {
		t.Fatal("first retry should schedule")
	}
	b.Dismiss() // cancel the pending timer, keep the spent count

	b.Capture(recoverableErr("two"))
	state, _, _ := b.Snapshot()
	if state != StateFatal {
		t.Errorf("expected fatal once the budget is spent, got %s", state)
	}
}

func TestDismissClears(t *testing.T) {
	b := newTestBoundary(3, nil)
	t.Cleanup(b.Close)

	b.Capture(recoverableErr("fetch failed"))
	b.Dismiss()

	state, err, _ := b.Snapshot()
	if state != StateOK || err != nil {
		t.Errorf("expected clean state after dismiss, got %s err=%v", state, err)
	}
}

func TestCloseCancelsPendingRetry(t *testing.T) {
	ran := make(chan struct{}, 1)
	b := newTestBoundary(3, func() { ran <- struct{}{} })

	b.Capture(recoverableErr("fetch failed"))
	b.Retry()
	b.Close()
	b.Dismiss()

	select {
	case <-ran:
		t.Fatal("closed boundary must not run the retry callback")
	case <-time.After(1500 * time.Millisecond):
	}
}

func TestActionsByState(t *testing.T) {
	b := newTestBoundary(3, nil)
	t.Cleanup(b.Close)

	if got := b.Actions(); got != nil {
		t.Fatalf("ok state offers no actions, got %v", got)
	}

	b.Capture(recoverableErr("fetch failed"))
	kinds := actionKinds(b.Actions())
	for _, want := range []ActionKind{ActionRetry, ActionRefresh, ActionReport, ActionDismiss} {
		if !kinds[want] {
			t.Errorf("capturing state missing %s in %v", want, kinds)
		}
	}
	// Quiz errors additionally offer draft-save and exit.
	if !kinds[ActionSaveDraft] || !kinds[ActionExitQuiz] {
		t.Errorf("quiz error missing its extra actions: %v", kinds)
	}

	b.Dismiss()
	b.Capture(apperr.New("denied", apperr.Options{
		Type:        apperr.AuthorizationError,
		Recoverable: apperr.Bool(false),
	}))
	kinds = actionKinds(b.Actions())
	if kinds[ActionRetry] {
		t.Error("fatal state must not offer retry")
	}
	for _, want := range []ActionKind{ActionRefresh, ActionGoHome, ActionReport} {
		if !kinds[want] {
			t.Errorf("fatal state missing %s in %v", want, kinds)
		}
	}
}

func TestActionsByErrorType(t *testing.T) {
	tests := []struct {
		typ   apperr.Type
		extra ActionKind
	}{
		{apperr.GroupError, ActionGoBack},
		{apperr.StudentError, ActionGoBack},
		{apperr.QuestionError, ActionGoBack},
		{apperr.ComponentError, ActionGoHome},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			b := newTestBoundary(3, nil)
			t.Cleanup(b.Close)

			b.Capture(apperr.New("x", apperr.Options{
				Type:        tt.typ,
				Recoverable: apperr.Bool(true),
			}))
			if kinds := actionKinds(b.Actions()); !kinds[tt.extra] {
				t.Errorf("%s missing %s", tt.typ, tt.extra)
			}
		})
	}
}

func actionKinds(actions []Action) map[ActionKind]bool {
	kinds := make(map[ActionKind]bool, len(actions))
	for _, a := range actions {
		kinds[a.Kind] = true
	}
	return kinds
}
