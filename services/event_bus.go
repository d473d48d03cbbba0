package services

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Event is a single typed notification emitted by a completed
// operation. Services buffer events while their transaction is open and
// publish only after commit, so observers never see a failed operation.
type Event struct {
	Type     string                 `json:"type"`
	PlayerID string                 `json:"player_id,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

// EventBus fans events out to in-process subscribers and hands them to
// the event worker for persistence. Publish never blocks an operation:
// a full channel drops the event for that consumer.
type EventBus struct {
	mu   sync.RWMutex
	subs map[string]chan Event
	sink chan Event
}

func NewEventBus() *EventBus {
	return &EventBus{
		subs: make(map[string]chan Event),
		sink: make(chan Event, 256),
	}
}

// Publish delivers events in the order they were issued within one
// operation. No ordering guarantee holds across operations.
func (b *EventBus) Publish(events ...Event) {
	for _, ev := range events {
		select {
		case b.sink <- ev:
		default:
			log.Printf("[EVENTS] sink full, dropping %s", ev.Type)
		}

		b.mu.RLock()
		for id, ch := range b.subs {
			select {
			case ch <- ev:
			default:
				log.Printf("[EVENTS] subscriber %s lagging, dropping %s", id, ev.Type)
			}
		}
		b.mu.RUnlock()
	}
}

// Sink is drained by the event worker.
func (b *EventBus) Sink() <-chan Event { return b.sink }

// Subscribe registers a live observer. Callers must Unsubscribe when done.
func (b *EventBus) Subscribe() (string, <-chan Event) {
	id := uuid.NewString()
	ch := make(chan Event, 64)
	b.mu.Lock()
	b.subs[id] = ch
	b.mu.Unlock()
	return id, ch
}

func (b *EventBus) Unsubscribe(id string) {
	b.mu.Lock()
	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
	b.mu.Unlock()
}
