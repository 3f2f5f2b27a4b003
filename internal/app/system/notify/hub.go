// Package notify fans board change events out to connected clients.
//
// The taskboard store emits one Change per committed mutation; the Hub
// re-broadcasts each one to every subscriber so open browser tabs can
// refresh their view. Subscribers that stop draining are dropped rather
// than allowed to stall the broadcast.
package notify

import (
	"sync"

	"github.com/campushub/campushub/internal/app/system/taskboard"
	"go.uber.org/zap"
)

// subscriberBuffer is how many undelivered events a subscriber may hold
// before it is considered stuck and disconnected.
const subscriberBuffer = 16

// Hub distributes board change events to subscribers.
type Hub struct {
	mu   sync.Mutex
	subs map[int]chan taskboard.Change
	next int
	log  *zap.Logger
}

// NewHub returns a hub ready to accept subscribers. Wire it to a store
// with store.Subscribe(hub.Broadcast).
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subs: make(map[int]chan taskboard.Change),
		log:  logger,
	}
}

// Subscribe registers a new listener and returns its event channel plus a
// cancel function. The channel is closed when cancel is called or when the
// subscriber falls too far behind.
func (h *Hub) Subscribe() (<-chan taskboard.Change, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	ch := make(chan taskboard.Change, subscriberBuffer)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if c, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// Broadcast delivers an event to every subscriber without blocking. A
// subscriber with a full buffer is dropped and its channel closed.
func (h *Hub) Broadcast(c taskboard.Change) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ch := range h.subs {
		select {
		case ch <- c:
		default:
			delete(h.subs, id)
			close(ch)
			if h.log != nil {
				h.log.Warn("dropped slow board subscriber", zap.Int("subscriber", id))
			}
		}
	}
}

// SubscriberCount reports how many listeners are connected.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
