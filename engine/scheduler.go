package engine

import (
	"sync"
	"time"
)

// Handle is a live recurring task
type Handle interface {
	Cancel()
}

// Scheduler starts recurring tasks
type Scheduler interface {
	Every(interval time.Duration, fn func()) Handle
}

// TickerScheduler runs one time.Ticker goroutine per handle and posts each tick to the UI thread
type TickerScheduler struct {
	poster Poster
}

// NewTickerScheduler creates a scheduler delivering ticks through poster
func NewTickerScheduler(poster Poster) *TickerScheduler {
	return &TickerScheduler{poster: poster}
}

// Every starts fn every interval until the returned handle is cancelled
func (s *TickerScheduler) Every(interval time.Duration, fn func()) Handle {
	h := &tickerHandle{stop: make(chan struct{})}
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-h.stop:
				return
			case <-ticker.C:
				s.poster.Post(fn)
			}
		}
	}()

	return h
}

type tickerHandle struct {
	stop chan struct{}
	once sync.Once
}

func (h *tickerHandle) Cancel() {
	h.once.Do(func() { close(h.stop) })
}

// ManualScheduler is a deterministic Scheduler for tests
// Ticks only happen when Fire is called
type ManualScheduler struct {
	mu        sync.Mutex
	handles   []*manualHandle
	started   int
	cancelled int
}

// NewManualScheduler creates an idle manual scheduler
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) Every(interval time.Duration, fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := &manualHandle{sched: s, fn: fn, interval: interval}
	s.handles = append(s.handles, h)
	s.started++
	return h
}

// Fire runs one tick of every live handle, returns how many fired
func (s *ManualScheduler) Fire() int {
	s.mu.Lock()
	live := make([]*manualHandle, 0, len(s.handles))
	for _, h := range s.handles {
		if !h.cancelled {
			live = append(live, h)
		}
	}
	s.mu.Unlock()

	for _, h := range live {
		h.fn()
	}
	return len(live)
}

// FireN calls Fire n times, stopping early when nothing is live
func (s *ManualScheduler) FireN(n int) int {
	ticks := 0
	for i := 0; i < n; i++ {
		if s.Fire() == 0 {
			break
		}
		ticks++
	}
	return ticks
}

// Live returns the number of uncancelled handles
func (s *ManualScheduler) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, h := range s.handles {
		if !h.cancelled {
			n++
		}
	}
	return n
}

// Started returns the number of Every calls
func (s *ManualScheduler) Started() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Cancelled returns the number of distinct handles cancelled
func (s *ManualScheduler) Cancelled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}

// LastInterval returns the interval of the newest handle
func (s *ManualScheduler) LastInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.handles) == 0 {
		return 0
	}
	return s.handles[len(s.handles)-1].interval
}

type manualHandle struct {
	sched     *ManualScheduler
	fn        func()
	interval  time.Duration
	cancelled bool
}

func (h *manualHandle) Cancel() {
	h.sched.mu.Lock()
	defer h.sched.mu.Unlock()
	if !h.cancelled {
		h.cancelled = true
		h.sched.cancelled++
	}
}
