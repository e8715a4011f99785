package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestPool_RunsAllTasks(t *testing.T) {
	ctx := context.Background()
	var ran atomic.Int64

	p := New(3, 8)
	results := p.Run(ctx)
	for i := 0; i < 10; i++ {
		if !p.Submit(ctx, func(context.Context) error {
			ran.Add(1)
			return nil
		}) {
			t.Fatalf("submit %d rejected", i)
		}
	}
	p.Close()

	var got int
	for res := range results {
		if res.Err != nil {
			t.Fatalf("unexpected error: %v", res.Err)
		}
		got++
	}
	if ran.Load() != 10 || got != 10 {
		t.Fatalf("ran %d, got %d results, want 10", ran.Load(), got)
	}
}

func TestPool_ManyMoreTasksThanBuffer(t *testing.T) {
	ctx := context.Background()
	var ran atomic.Int64

	p := New(2, 1)
	results := p.Run(ctx)
	for i := 0; i < 100; i++ {
		p.Submit(ctx, func(context.Context) error {
			ran.Add(1)
			return nil
		})
	}
	p.Close()

	var got int
	for range results {
		got++
	}
	if ran.Load() != 100 || got != 100 {
		t.Fatalf("ran %d, got %d results, want 100", ran.Load(), got)
	}
}

func TestPool_ReportsTaskErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	p := New(2, 4)
	results := p.Run(ctx)
	p.Submit(ctx, func(context.Context) error { return boom })
	p.Submit(ctx, func(context.Context) error { return nil })
	p.Close()

	var failed int
	for res := range results {
		if res.Err != nil {
			if !errors.Is(res.Err, boom) {
				t.Fatalf("unexpected error: %v", res.Err)
			}
			failed++
		}
	}
	if failed != 1 {
		t.Fatalf("failed = %d, want 1", failed)
	}
}

func TestPool_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(2, 1)
	results := p.Run(ctx)
	p.Submit(ctx, func(context.Context) error { return nil })
	p.Close()

	for range results {
	}
	// Reaching here means every worker exited and the channel closed.
}

func TestPool_SubmitAbortsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(1, 0)
	// No workers running and a full (zero) buffer: only the cancelled
	// context can unblock the send.
	if p.Submit(ctx, func(context.Context) error { return nil }) {
		t.Fatalf("submit must report rejection after cancel")
	}
}
