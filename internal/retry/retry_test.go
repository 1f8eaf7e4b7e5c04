package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	p := Policy{MaxAttempts: 3, BaseDelay: time.Millisecond, Multiplier: 2}
	calls := 0
	err := p.Do(context.Background(), "op", func(ctx context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("got %d calls, want 1", calls)
	}
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	p := Policy{MaxAttempts: 3, BaseDelay: time.Millisecond, Multiplier: 2}
	calls := 0
	err := p.Do(context.Background(), "op", func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("got %d calls, want 3", calls)
	}
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	p := Policy{MaxAttempts: 3, BaseDelay: time.Millisecond, Multiplier: 2}
	calls := 0
	sentinel := errors.New("still broken")
	err := p.Do(context.Background(), "op", func(ctx context.Context) error {
		calls++
		return sentinel
	})
	if calls != 3 {
		t.Errorf("got %d calls, want 3", calls)
	}
	if !errors.Is(err, sentinel) {
		t.Errorf("expected wrapped last error, got %v", err)
	}
}

func TestDo_ContextCancelStopsBackoff(t *testing.T) {
	p := Policy{MaxAttempts: 5, BaseDelay: time.Hour, Multiplier: 2}
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := p.Do(ctx, "op", func(ctx context.Context) error {
		calls++
		return errors.New("fail")
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("got %d calls, want 1", calls)
	}
	if time.Since(start) > time.Second {
		t.Error("cancel did not interrupt the backoff sleep")
	}
}
