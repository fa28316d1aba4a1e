package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestWaitFirstCallDoesNotBlock(t *testing.T) {
	l := New(time.Second)

	start := time.Now()
	if err := l.Wait(context.Background(), "api.example.com"); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("first call blocked for %v", elapsed)
	}
}

func TestWaitEnforcesMinDelay(t *testing.T) {
	l := New(50 * time.Millisecond)
	ctx := context.Background()

	if err := l.Wait(ctx, "api.example.com"); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	start := time.Now()
	if err := l.Wait(ctx, "api.example.com"); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("second call returned after %v, want at least ~50ms", elapsed)
	}
}

func TestWaitSeparateHostsDoNotShareDelay(t *testing.T) {
	l := New(time.Second)
	ctx := context.Background()

	if err := l.Wait(ctx, "a.example.com"); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	start := time.Now()
	if err := l.Wait(ctx, "b.example.com"); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("different host blocked for %v", elapsed)
	}
}

func TestWaitCancelledContext(t *testing.T) {
	l := New(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	if err := l.Wait(ctx, "api.example.com"); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	cancel()
	if err := l.Wait(ctx, "api.example.com"); err == nil {
		t.Fatal("expected error when context is cancelled during the wait")
	}
}
