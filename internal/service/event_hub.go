package service

import (
	"context"
	"sync"
)

const (
	hubBufferSize       = 50
	hubSubscriberBuffer = 16
)

// HubEvent is one lifecycle event as seen by in-process subscribers.
// Room is empty for global broadcasts.
type HubEvent struct {
	Room    string      `json:"room,omitempty"`
	Topic   string      `json:"topic"`
	Payload interface{} `json:"payload"`
}

// EventHub is an in-process fan-out for the SSE stream consumed by the
// waiting-room display. It keeps a small ring buffer so a reconnecting
// display can catch up on recent events. Implements Notifier.
type EventHub struct {
	mu     sync.Mutex
	buffer []HubEvent
	subs   map[uint64]chan HubEvent
	nextID uint64
}

// HubSubscription is one subscriber's handle on the hub.
type HubSubscription struct {
	hub  *EventHub
	id   uint64
	ch   chan HubEvent
	once sync.Once
}

func NewEventHub() *EventHub {
	return &EventHub{
		subs: make(map[uint64]chan HubEvent),
	}
}

func (h *EventHub) Broadcast(ctx context.Context, topic string, payload interface{}) {
	h.publish(HubEvent{Topic: topic, Payload: payload})
}

func (h *EventHub) BroadcastToRoom(ctx context.Context, room, topic string, payload interface{}) {
	h.publish(HubEvent{Room: room, Topic: topic, Payload: payload})
}

func (h *EventHub) publish(event HubEvent) {
	h.mu.Lock()
	h.buffer = append(h.buffer, event)
	if len(h.buffer) > hubBufferSize {
		h.buffer = h.buffer[len(h.buffer)-hubBufferSize:]
	}
	subs := make([]chan HubEvent, 0, len(h.subs))
	for _, ch := range h.subs {
		subs = append(subs, ch)
	}
	h.mu.Unlock()

	// Slow subscribers are skipped rather than blocking the publisher.
	for _, ch := range subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribe registers a new subscriber and returns the buffered backlog
// of recent events.
func (h *EventHub) Subscribe() (*HubSubscription, []HubEvent) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	ch := make(chan HubEvent, hubSubscriberBuffer)
	h.subs[id] = ch
	backlog := append([]HubEvent(nil), h.buffer...)
	h.mu.Unlock()

	return &HubSubscription{hub: h, id: id, ch: ch}, backlog
}

func (s *HubSubscription) Events() <-chan HubEvent {
	return s.ch
}

func (s *HubSubscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs, s.id)
		s.hub.mu.Unlock()
	})
}
