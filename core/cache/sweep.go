package cache

import (
	"sync"
	"time"
)

// sweeper runs fn at a fixed interval on its own goroutine. Lazy expiry on
// access bounds staleness but not memory: keys that are never read again
// would otherwise sit in the store until evicted by size pressure.
type sweeper struct {
	interval time.Duration
	fn       func()

	mu      sync.Mutex
	stopCh  chan struct{}
	wg      sync.WaitGroup
	running bool
}

func newSweeper(interval time.Duration, fn func()) *sweeper {
	return &sweeper{interval: interval, fn: fn}
}

func (s *sweeper) start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.wg.Add(1)
	go s.loop(s.stopCh)
}

func (s *sweeper) stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *sweeper) loop(stopCh chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			s.fn()
		}
	}
}
