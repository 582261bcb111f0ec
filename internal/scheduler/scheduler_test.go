package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestRunTicksUntilCancelled(t *testing.T) {
	sched := New(Options{Interval: 10 * time.Millisecond}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	var ticks atomic.Int32

	done := make(chan error, 1)
	go func() {
		done <- sched.Run(ctx, func(context.Context, time.Time) error {
			if ticks.Add(1) >= 3 {
				cancel()
			}
			return nil
		})
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("期望 context.Canceled, 實際 %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("排程器未在期限內停止")
	}

	if ticks.Load() < 3 {
		t.Fatalf("觸發次數不足: %d", ticks.Load())
	}
}

func TestRunContinuesAfterTickError(t *testing.T) {
	sched := New(Options{Interval: 10 * time.Millisecond}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	var ticks atomic.Int32

	done := make(chan error, 1)
	go func() {
		done <- sched.Run(ctx, func(context.Context, time.Time) error {
			if ticks.Add(1) >= 2 {
				cancel()
			}
			return errors.New("下載失敗")
		})
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("排程器未在期限內停止")
	}

	if ticks.Load() < 2 {
		t.Fatal("失敗的檢查不應中止排程")
	}
}

func TestNewPanicsOnZeroInterval(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("零間隔應觸發 panic")
		}
	}()
	New(Options{}, zerolog.Nop())
}
