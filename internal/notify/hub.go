package notify

import (
	"log/slog"
	"sync"

	k "kiosk-fleet-health/internal/kafka"
)

// Hub is the per-fleet registry of live change subscribers. Registration and
// deregistration are first-class; a subscription's lifetime is tied to the
// client connection that took it out.
type Hub struct {
	mu     sync.Mutex
	subs   map[uint64]*Subscription
	nextID uint64
	buffer int
}

// Subscription is one subscriber's handle. Close deregisters it promptly and
// closes the channel returned by C.
type Subscription struct {
	id   uint64
	ch   chan k.ChangeRecord
	hub  *Hub
	once sync.Once
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 64
	}
	return &Hub{
		subs:   make(map[uint64]*Subscription),
		buffer: buffer,
	}
}

func (h *Hub) Subscribe() *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	sub := &Subscription{
		id:  h.nextID,
		ch:  make(chan k.ChangeRecord, h.buffer),
		hub: h,
	}
	h.subs[sub.id] = sub
	return sub
}

// Broadcast delivers a change to every subscriber without ever blocking the
// caller: a subscriber whose buffer is full just misses the message. The poll
// fallback exists so a missed message is not a correctness problem.
func (h *Hub) Broadcast(change k.ChangeRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subs {
		select {
		case sub.ch <- change:
		default:
			slog.Warn("Subscriber buffer full, dropping change",
				"subscriber", sub.id,
				"machine_id", change.Record.MachineID,
			)
		}
	}
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, id)
}

func (s *Subscription) C() <-chan k.ChangeRecord {
	return s.ch
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s.id)
		close(s.ch)
	})
}
