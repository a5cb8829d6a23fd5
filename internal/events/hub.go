package events

import (
	"log"
	"sync"
	"time"
)

const (
	TypeSubmitted = "inspection.submitted"
	TypeResolved  = "compliance.resolved"

	subscriberBuffer = 16
)

// Event is pushed to every live subscriber as JSON.
type Event struct {
	Type         string    `json:"type"`
	InspectionID string    `json:"inspection_id"`
	Detail       string    `json:"detail,omitempty"`
	At           time.Time `json:"at"`
}

// Hub fans events out to websocket subscribers. Slow subscribers drop events
// rather than blocking a submission.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan Event)}
}

// Subscribe registers a subscriber. The returned cancel func unregisters it
// and closes the channel; calling it twice is safe.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan Event, subscriberBuffer)
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
			close(ch)
		})
	}
}

func (h *Hub) Publish(ev Event) {
	if h == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			log.Printf("Hub.Publish(): subscriber %d is full, dropping %s", id, ev.Type)
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
