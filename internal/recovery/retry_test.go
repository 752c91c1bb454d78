package recovery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quizdesk/quizdesk/internal/apperr"
)

func TestDoFirstAttemptSucceeds(t *testing.T) {
	calls := 0
	res := Do(context.Background(), func() (string, error) {
		calls++
		return "ok", nil
	}, 3, time.Millisecond, false)

	if !res.Success || res.Data != "ok" || res.Err != nil {
		t.Fatalf("unexpected result: %+v", res)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDoRecoversMidway(t *testing.T) {
	calls := 0
	res := Do(context.Background(), func() (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("Network Error")
		}
		return 42, nil
	}, 5, time.Millisecond, false)

	if !res.Success || res.Data != 42 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	res := Do(context.Background(), func() (int, error) {
		calls++
		return 0, errors.New("Network Error")
	}, 2, time.Millisecond, false)

	// maxRetries of 2 means three attempts total.
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
	if res.Success {
		t.Error("expected failure")
	}
	if res.Err == nil {
		t.Fatal("expected a classified error")
	}
	if res.Err.Type != apperr.NetworkError {
		t.Errorf("expected NETWORK_ERROR, got %s", res.Err.Type)
	}
	if res.Err.RetryCount != 2 {
		t.Errorf("expected RetryCount 2, got %d", res.Err.RetryCount)
	}
}

func TestDoBackoffDoubles(t *testing.T) {
	start := time.Now()
	Do(context.Background(), func() (int, error) {
		return 0, errors.New("Network Error")
	}, 3, 10*time.Millisecond, true)

	// Waits of 10 + 20 + 40 milliseconds between the four attempts.
	if elapsed := time.Since(start); elapsed < 70*time.Millisecond {
		t.Errorf("expected at least 70ms of backoff, got %v", elapsed)
	}
}

func TestDoStopsOnNonRecoverable(t *testing.T) {
	calls := 0
	res := Do(context.Background(), func() (int, error) {
		calls++
		return 0, apperr.New("email already exists", apperr.Options{
			Type:        apperr.ValidationError,
			Recoverable: apperr.Bool(false),
		})
	}, 5, time.Millisecond, false)

	if calls != 1 {
		t.Errorf("expected no retries for a non-recoverable failure, got %d calls", calls)
	}
	if res.Success || res.Err == nil {
		t.Fatalf("expected a failure result: %+v", res)
	}
	if res.Err.Type != apperr.ValidationError {
		t.Errorf("expected VALIDATION_ERROR, got %s", res.Err.Type)
	}
	if res.Err.RetryCount != 0 {
		t.Errorf("expected RetryCount 0, got %d", res.Err.RetryCount)
	}
}

func TestDoContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	res := Do(ctx, func() (int, error) {
		calls++
		cancel()
		return 0, errors.New("Network Error")
	}, 10, time.Hour, false)

	if calls != 1 {
		t.Errorf("expected the loop to stop after 1 call, got %d", calls)
	}
	if res.Success || res.Err == nil {
		t.Fatalf("expected a failure result: %+v", res)
	}
}

func TestDoZeroRetriesSingleAttempt(t *testing.T) {
	calls := 0
	res := Do(context.Background(), func() (int, error) {
		calls++
		return 0, errors.New("boom")
	}, 0, time.Millisecond, false)

	if calls != 1 {
		t.Errorf("expected exactly 1 call, got %d", calls)
	}
	if res.Success {
		t.Error("expected failure")
	}
}
