package bench

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_RunsAllTasks(t *testing.T) {
	p := NewWorkerPool(3)
	ctx := context.Background()
	p.Start(ctx)

	var n atomic.Int64
	for range 50 {
		if err := p.EnqueueTask(ctx, func(context.Context) error {
			n.Add(1)
			return nil
		}); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("Stop() = %v", err)
	}
	if n.Load() != 50 {
		t.Errorf("ran %d tasks, want 50", n.Load())
	}
}

func TestWorkerPool_ReportsTaskError(t *testing.T) {
	p := NewWorkerPool(0)
	ctx := context.Background()
	p.Start(ctx)

	boom := errors.New("boom")
	_ = p.EnqueueTask(ctx, func(context.Context) error { return boom })
	if err := p.Stop(); !errors.Is(err, boom) {
		t.Errorf("Stop() = %v, want %v", err, boom)
	}
}
