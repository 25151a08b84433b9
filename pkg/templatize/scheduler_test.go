package templatize_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-templatize/pkg/templatize"
)

func TestDebounceCoalescesPerHost(t *testing.T) {
	s := templatize.NewScheduler(time.Hour)

	runs := map[int64]int{}
	for i := 0; i < 5; i++ {
		s.Debounce(1, func() { runs[1]++ })
		s.Debounce(2, func() { runs[2]++ })
	}
	if got := s.Pending(); got != 2 {
		t.Fatalf("pending = %d, want 2", got)
	}

	s.Flush()

	if runs[1] != 1 || runs[2] != 1 {
		t.Fatalf("runs = %v, want one per host", runs)
	}
	if got := s.Pending(); got != 0 {
		t.Fatalf("pending after flush = %d", got)
	}
}

func TestFlushRunsReenqueuedCallbacks(t *testing.T) {
	s := templatize.NewScheduler(time.Hour)

	count := 0
	s.Debounce(1, func() {
		count++
		s.Debounce(1, func() { count += 10 })
	})
	s.Flush()

	if count != 11 {
		t.Fatalf("count = %d, want 11 (re-enqueued callback must drain too)", count)
	}
	if got := s.Pending(); got != 0 {
		t.Fatalf("pending after flush = %d", got)
	}
}

func TestTemplatizerDebounceCoalescesPerOwner(t *testing.T) {
	s := templatize.NewScheduler(time.Hour)
	a := templatize.New(templatize.WithScheduler(s))
	b := templatize.New(templatize.WithScheduler(s))

	runs := map[int64]int{}
	for i := 0; i < 3; i++ {
		a.Debounce(func() { runs[a.ID()]++ })
		b.Debounce(func() { runs[b.ID()]++ })
	}
	if got := s.Pending(); got != 2 {
		t.Fatalf("pending = %d, want one slot per templatizer", got)
	}

	a.Flush()

	if runs[a.ID()] != 1 || runs[b.ID()] != 1 {
		t.Fatalf("runs = %v, want exactly one per owner", runs)
	}
	if got := s.Pending(); got != 0 {
		t.Fatalf("pending after flush = %d", got)
	}
}

func TestTimerDrivenFlush(t *testing.T) {
	s := templatize.NewScheduler(2 * time.Millisecond)

	done := make(chan struct{})
	s.Debounce(1, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("debounced callback never ran")
	}
}

func TestSchedulerAssignsIncreasingIDs(t *testing.T) {
	s := templatize.NewScheduler(time.Hour)
	a := templatize.New(templatize.WithScheduler(s))
	b := templatize.New(templatize.WithScheduler(s))

	if a.ID() >= b.ID() {
		t.Fatalf("ids not increasing: %d, %d", a.ID(), b.ID())
	}
	if a.Scheduler() != s || b.Scheduler() != s {
		t.Fatalf("scheduler not shared")
	}
}

func TestWithDelayOwnScheduler(t *testing.T) {
	shared := templatize.NewScheduler(time.Hour)

	own := templatize.New(templatize.WithDelay(time.Hour))
	other := templatize.New(templatize.WithDelay(time.Hour))
	if own.Scheduler() == other.Scheduler() {
		t.Fatalf("independent templatizers share a scheduler")
	}

	// An explicit scheduler wins over the delay hint.
	attached := templatize.New(templatize.WithScheduler(shared), templatize.WithDelay(time.Nanosecond))
	if attached.Scheduler() != shared {
		t.Fatalf("delay hint displaced the shared scheduler")
	}
}

func TestHostStackResolvesNestedParent(t *testing.T) {
	s := templatize.NewScheduler(time.Hour)
	outer := templatize.New(templatize.WithScheduler(s))

	s.PushHost(outer)
	inner := templatize.New(templatize.WithScheduler(s))
	s.PopHost()

	if inner.RootHost() != outer {
		t.Fatalf("nested templatizer did not resolve the stamping host as parent")
	}
	if s.CurrentHost() != nil {
		t.Fatalf("host stack not empty after pop")
	}

	standalone := templatize.New(templatize.WithScheduler(s))
	if standalone.RootHost() != standalone {
		t.Fatalf("templatizer created outside stamping picked up a parent")
	}
}
