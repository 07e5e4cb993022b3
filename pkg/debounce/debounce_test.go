package debounce

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestTriggerCollapsesBurst(t *testing.T) {
	d := New(50 * time.Millisecond)
	var calls atomic.Int32
	var mu sync.Mutex
	last := -1

	for i := 0; i < 5; i++ {
		i := i
		d.Trigger(func() {
			calls.Add(1)
			mu.Lock()
			last = i
			mu.Unlock()
		})
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(200 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected exactly one call, got %d", got)
	}
	mu.Lock()
	defer mu.Unlock()
	if last != 4 {
		t.Fatalf("expected the last scheduled call to win, got %d", last)
	}
}

func TestCancelReportsPending(t *testing.T) {
	d := New(time.Hour)
	ran := false
	d.Trigger(func() { ran = true })
	if !d.Cancel() {
		t.Fatal("expected a pending call")
	}
	if d.Cancel() {
		t.Fatal("second cancel must find nothing")
	}
	if ran {
		t.Fatal("cancelled call ran")
	}
}

func TestTimerAfterCancelDoesNotRun(t *testing.T) {
	d := New(10 * time.Millisecond)
	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Cancel()
	d.Trigger(func() { calls.Add(10) })
	time.Sleep(60 * time.Millisecond)
	if got := calls.Load(); got != 10 {
		t.Fatalf("expected only the later call, got %d", got)
	}
}

func TestCancelAndStop(t *testing.T) {
	d := New(20 * time.Millisecond)
	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	if !d.Cancel() {
		t.Fatal("expected cancel to drop a pending call")
	}
	d.Stop()
	d.Trigger(func() { calls.Add(1) })
	time.Sleep(80 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Fatalf("expected no calls, got %d", got)
	}
}
