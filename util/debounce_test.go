package util

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_BurstFiresOnce(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var calls int32

	for i := 0; i < 10; i++ {
		d.Trigger(func() { atomic.AddInt32(&calls, 1) })
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("Expected 1 call after burst, got %d", got)
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls int32

	d.Trigger(func() { atomic.AddInt32(&calls, 1) })
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Errorf("Expected no calls after Stop, got %d", got)
	}
}

func TestDebouncer_LatestTriggerWins(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var got int32

	d.Trigger(func() { atomic.StoreInt32(&got, 1) })
	d.Trigger(func() { atomic.StoreInt32(&got, 2) })

	time.Sleep(60 * time.Millisecond)
	if atomic.LoadInt32(&got) != 2 {
		t.Errorf("Expected the latest trigger to win, got %d", got)
	}
}
