package templatize

import (
	"sort"
	"sync"
	"time"
)

// DefaultFlushDelay is the debounce window used when a templatizer creates
// its own scheduler.
const DefaultFlushDelay = 5 * time.Millisecond

// Scheduler coalesces refresh requests from the templatizers attached to it
// into one batched callback per host id, behind a single shared debounce
// timer. It also assigns host ids and carries the host-context stack used to
// resolve nested templatizations during stamping.
//
// The mutex exists because the timer fires on its own goroutine; the pending
// map is swapped out atomically before callbacks run, so no two drain passes
// interleave and a callback scheduled during a drain is never lost.
type Scheduler struct {
	mu      sync.Mutex
	delay   time.Duration
	nextID  int64
	pending map[int64]func()
	timer   *time.Timer
	expired bool

	hostStack []*Templatizer
}

// NewScheduler builds a scheduler with the given debounce window.
func NewScheduler(delay time.Duration) *Scheduler {
	if delay <= 0 {
		delay = DefaultFlushDelay
	}
	return &Scheduler{
		delay:   delay,
		pending: make(map[int64]func()),
	}
}

// NextID returns a fresh, monotonically increasing host id.
func (s *Scheduler) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return s.nextID
}

// Debounce records fn as the pending callback for the host id, replacing any
// earlier one, and re-arms the shared timer.
func (s *Scheduler) Debounce(id int64, fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[id] = fn
	s.expired = false
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.onExpire)
}

// Pending reports the number of callbacks waiting for the next flush.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Flush forces an immediate drain. Callbacks that re-enqueue themselves
// while the drain runs are executed before Flush returns.
func (s *Scheduler) Flush() {
	s.drain(true)
}

func (s *Scheduler) onExpire() {
	s.mu.Lock()
	s.expired = true
	s.mu.Unlock()
	s.drain(false)
}

// drain loops while the timer has expired or a forced flush is requested:
// stop the timer, swap out the pending map, run the swapped-out batch. The
// re-check loop is what catches callbacks that re-enqueue as a side effect
// of being flushed.
func (s *Scheduler) drain(force bool) {
	for {
		s.mu.Lock()
		if len(s.pending) == 0 || !(force || s.expired) {
			s.mu.Unlock()
			return
		}
		s.expired = false
		if s.timer != nil {
			s.timer.Stop()
			s.timer = nil
		}
		batch := s.pending
		s.pending = make(map[int64]func())
		s.mu.Unlock()

		ids := make([]int64, 0, len(batch))
		for id := range batch {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for _, id := range ids {
			batch[id]()
		}
	}
}

// PushHost enters a stamping host context; nested templatizers created while
// the context is active resolve it as their parent.
func (s *Scheduler) PushHost(t *Templatizer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hostStack = append(s.hostStack, t)
}

// PopHost leaves the innermost stamping host context.
func (s *Scheduler) PopHost() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := len(s.hostStack); n > 0 {
		s.hostStack = s.hostStack[:n-1]
	}
}

// CurrentHost returns the innermost stamping host, or nil outside stamping.
func (s *Scheduler) CurrentHost() *Templatizer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := len(s.hostStack); n > 0 {
		return s.hostStack[n-1]
	}
	return nil
}
