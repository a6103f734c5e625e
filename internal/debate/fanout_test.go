package debate

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

func TestFanOut_PreservesDeclarationOrder(t *testing.T) {
	results := fanOut(context.Background(), 5, 2, time.Second, func(ctx context.Context, i int) (string, error) {
		// Later calls finish first to exercise the reordering.
		time.Sleep(time.Duration(5-i) * time.Millisecond)
		return fmt.Sprintf("call-%d", i), nil
	})

	if len(results) != 5 {
		t.Fatalf("got %d results, want 5", len(results))
	}
	for i, res := range results {
		if res.err != nil {
			t.Fatalf("results[%d] unexpected error: %v", i, res.err)
		}
		if want := fmt.Sprintf("call-%d", i); res.text != want {
			t.Errorf("results[%d] = %q, want %q", i, res.text, want)
		}
	}
}

func TestFanOut_ErrorsStayInSlot(t *testing.T) {
	boom := errors.New("boom")
	results := fanOut(context.Background(), 3, 3, time.Second, func(ctx context.Context, i int) (string, error) {
		if i == 1 {
			return "", boom
		}
		return "ok", nil
	})

	if results[0].err != nil || results[2].err != nil {
		t.Error("successful calls carried an error")
	}
	if !errors.Is(results[1].err, boom) {
		t.Errorf("results[1].err = %v, want boom", results[1].err)
	}
}

func TestFanOut_BoundsConcurrency(t *testing.T) {
	var active, peak atomic.Int32

	fanOut(context.Background(), 10, 3, time.Second, func(ctx context.Context, i int) (string, error) {
		cur := active.Add(1)
		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		active.Add(-1)
		return "", nil
	})

	if peak.Load() > 3 {
		t.Errorf("peak concurrency = %d, want at most 3", peak.Load())
	}
}

func TestFanOut_PerCallTimeout(t *testing.T) {
	results := fanOut(context.Background(), 1, 1, 10*time.Millisecond, func(ctx context.Context, i int) (string, error) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Second):
			return "too late", nil
		}
	})

	if !errors.Is(results[0].err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", results[0].err)
	}
}

func TestFanOut_ZeroCalls(t *testing.T) {
	results := fanOut(context.Background(), 0, 3, time.Second, func(ctx context.Context, i int) (string, error) {
		t.Fatal("call function must not run")
		return "", nil
	})
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}
