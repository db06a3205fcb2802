package cache

import "sync"

type EventType string

const (
	// EventStored fires when a fetched value is written to the store.
	EventStored EventType = "stored"
	// EventInvalidated fires when Invalidate removes a present key.
	EventInvalidated EventType = "invalidated"
	// EventEvicted fires when the size bound removes a key.
	EventEvicted EventType = "evicted"
	// EventExpired fires when the sweep or a lazy check removes an aged key.
	EventExpired EventType = "expired"
	// EventCleared fires once per InvalidateAll; Key is empty.
	EventCleared EventType = "cleared"
)

type Event struct {
	Type EventType
	Key  string
}

// subscribers fans cache events out to registered channels. Delivery is
// best-effort: a full channel drops the event rather than blocking the
// cache operation that produced it.
type subscribers struct {
	mu     sync.Mutex
	nextID int
	chans  map[int]chan Event
}

func newSubscribers() *subscribers {
	return &subscribers{chans: make(map[int]chan Event)}
}

func (s *subscribers) subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan Event, buffer)
	s.chans[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.chans, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (s *subscribers) publish(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.chans {
		select {
		case ch <- e:
		default:
		}
	}
}
