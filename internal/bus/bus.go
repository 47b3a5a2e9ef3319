// Package bus is the change-notification fanout between the store and any
// open view. Mutations publish a typed event; listeners re-read the store
// on receipt (pull model) rather than patching local state from the event.
package bus

import (
	"context"
	"sync"
	"sync/atomic"
)

// EntityKind names the collection a change event refers to.
type EntityKind string

const (
	EntityUser          EntityKind = "user"
	EntityProfile       EntityKind = "profile"
	EntityPendingUpdate EntityKind = "pending_update"
	EntityProject       EntityKind = "project"
	EntityInquiry       EntityKind = "inquiry"
	EntityStaffRelay    EntityKind = "staff_relay"
	EntityDirectRelay   EntityKind = "direct_relay"
)

// Action names what happened to the entity.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event is the payload broadcast after every store mutation. It carries the
// changed entity kind and id so listeners can re-fetch selectively.
type Event struct {
	Entity EntityKind `json:"entity"`
	Action Action     `json:"action"`
	ID     string     `json:"id"`
}

// subscriberBuffer absorbs bursts from cascading mutations; Publish never
// blocks, so a full buffer drops events. Listeners re-pull the store anyway,
// so a dropped event costs at most one stale read until the next change.
const subscriberBuffer = 64

type subscriber struct {
	ch     chan Event
	closed atomic.Bool
}

// Bus is an in-process broadcast of change events. The zero value is not
// usable; construct with New.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[*subscriber]struct{}
	closed      atomic.Bool
}

func New() *Bus {
	return &Bus{
		subscribers: make(map[*subscriber]struct{}),
	}
}

// Publish sends the event to every active subscriber without blocking.
// Sends happen under the read lock: channels are only closed under the
// write lock, so a send can never race a close.
func (b *Bus) Publish(event Event) {
	if b.closed.Load() {
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subscribers {
		select {
		case sub.ch <- event:
		default:
		}
	}
}

// Subscribe returns a channel of change events. The channel is closed when
// ctx is cancelled or the bus shuts down.
func (b *Bus) Subscribe(ctx context.Context) <-chan Event {
	sub := &subscriber{ch: make(chan Event, subscriberBuffer)}

	b.mu.Lock()
	if b.closed.Load() {
		b.mu.Unlock()
		close(sub.ch)
		return sub.ch
	}
	b.subscribers[sub] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.remove(sub)
	}()

	return sub.ch
}

// Shutdown closes every subscriber channel and rejects further publishes.
func (b *Bus) Shutdown() {
	if !b.closed.CompareAndSwap(false, true) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for sub := range b.subscribers {
		if sub.closed.CompareAndSwap(false, true) {
			close(sub.ch)
		}
	}
	b.subscribers = nil
}

func (b *Bus) remove(sub *subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subscribers == nil {
		return
	}
	if _, ok := b.subscribers[sub]; !ok {
		return
	}
	delete(b.subscribers, sub)
	if sub.closed.CompareAndSwap(false, true) {
		close(sub.ch)
	}
}
