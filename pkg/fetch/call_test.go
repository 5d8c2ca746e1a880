package fetch

import (
	"context"
	"errors"
	"testing"
	"time"

	"garminexport/pkg/connect"
)

func testCallConfig() CallConfig {
	return CallConfig{
		MaxAttempts:  3,
		AttemptDelay: 5 * time.Millisecond,
	}
}

func TestCall_SuccessOnFirstAttempt(t *testing.T) {
	calls := 0
	op := func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	}

	got := Call(context.Background(), "test_call", op, "fallback", testCallConfig())

	if got != "ok" {
		t.Errorf("Call = %q, want %q", got, "ok")
	}
	if calls != 1 {
		t.Errorf("Operation called %d times, want 1", calls)
	}
}

func TestCall_SuccessAfterRetry(t *testing.T) {
	calls := 0
	op := func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("transient failure")
		}
		return "ok", nil
	}

	got := Call(context.Background(), "test_call", op, "fallback", testCallConfig())

	if got != "ok" {
		t.Errorf("Call = %q, want %q", got, "ok")
	}
	if calls != 3 {
		t.Errorf("Operation called %d times, want 3", calls)
	}
}

func TestCall_ExhaustedReturnsFallback(t *testing.T) {
	calls := 0
	op := func(ctx context.Context) (int, error) {
		calls++
		return 0, &connect.APIError{StatusCode: 500, ErrorClass: connect.ErrorClassServer}
	}

	got := Call(context.Background(), "test_call", op, 42, testCallConfig())

	if got != 42 {
		t.Errorf("Call = %d, want fallback 42", got)
	}
	if calls != 3 {
		t.Errorf("Operation called %d times, want 3", calls)
	}
}

func TestCall_SingleAttempt(t *testing.T) {
	calls := 0
	op := func(ctx context.Context) (connect.Payload, error) {
		calls++
		return nil, errors.New("boom")
	}

	cfg := CallConfig{MaxAttempts: 1, AttemptDelay: 5 * time.Millisecond}
	got := Call(context.Background(), "test_call", op, connect.Payload(nil), cfg)

	if got != nil {
		t.Errorf("Call = %v, want nil fallback", got)
	}
	if calls != 1 {
		t.Errorf("Operation called %d times, want 1", calls)
	}
}

func TestCall_ClampsAttemptsToOne(t *testing.T) {
	calls := 0
	op := func(ctx context.Context) (string, error) {
		calls++
		return "", errors.New("boom")
	}

	cfg := CallConfig{MaxAttempts: 0, AttemptDelay: 5 * time.Millisecond}
	got := Call(context.Background(), "test_call", op, "fallback", cfg)

	if got != "fallback" {
		t.Errorf("Call = %q, want %q", got, "fallback")
	}
	if calls != 1 {
		t.Errorf("Operation called %d times, want 1", calls)
	}
}

func TestCall_CancelledContextSkipsDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	op := func(ctx context.Context) (string, error) {
		calls++
		return "", ctx.Err()
	}

	// With a live context these delays would take 20 seconds
	cfg := CallConfig{MaxAttempts: 3, AttemptDelay: 10 * time.Second}

	start := time.Now()
	got := Call(ctx, "test_call", op, "fallback", cfg)
	elapsed := time.Since(start)

	if got != "fallback" {
		t.Errorf("Call = %q, want %q", got, "fallback")
	}
	if calls != 3 {
		t.Errorf("Operation called %d times, want 3", calls)
	}
	if elapsed > 1*time.Second {
		t.Errorf("Call took %v with cancelled context, want fast failure", elapsed)
	}
}

func TestDefaultCallConfig(t *testing.T) {
	cfg := DefaultCallConfig()

	if cfg.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.MaxAttempts)
	}
	if cfg.AttemptDelay != 2*time.Second {
		t.Errorf("AttemptDelay = %v, want 2s", cfg.AttemptDelay)
	}
}
