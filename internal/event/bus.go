// Package event is a synchronous topic bus carrying viewport-change
// notifications from the host frontend to the binding layer. Delivery is
// strictly sequential: Publish runs every matching handler on the caller's
// goroutine, in subscription order, and returns when all have finished.
// There are no queues, workers, or timers; a notification is fully handled
// before the next one is published.
package event

import (
	"fmt"

	"github.com/dshills/relnum/internal/host"
)

// Viewport is the payload of every viewport-change notification: the
// affected buffer and the window displaying it.
type Viewport struct {
	Buffer host.BufferID
	Window host.WindowID
}

// Handler receives a published notification.
type Handler func(topic Topic, ev Viewport)

// Subscription identifies a registered handler for later removal.
type Subscription struct {
	id int
}

// Bus routes published notifications to matching subscribers.
// Not safe for concurrent use; publishing and subscribing happen on the
// host's single event thread.
type Bus struct {
	subs   []subscriber
	nextID int

	// PanicHandler, when set, receives recovered panics from handlers so
	// one faulty subscriber cannot take down the event thread. When nil,
	// panics propagate.
	PanicHandler func(topic Topic, recovered any)

	published uint64
	delivered uint64
	panicked  uint64
}

type subscriber struct {
	id      int
	pattern Topic
	fn      Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for topics matching the pattern.
// Handlers fire in subscription order.
func (b *Bus) Subscribe(pattern Topic, fn Handler) Subscription {
	b.nextID++
	b.subs = append(b.subs, subscriber{id: b.nextID, pattern: pattern, fn: fn})
	return Subscription{id: b.nextID}
}

// Unsubscribe removes a previously registered handler. Unknown
// subscriptions are ignored.
func (b *Bus) Unsubscribe(sub Subscription) {
	for i, s := range b.subs {
		if s.id == sub.id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers the notification to every matching subscriber and
// returns once all handlers have run.
func (b *Bus) Publish(topic Topic, ev Viewport) {
	b.published++
	for _, s := range b.subs {
		if !topic.Match(s.pattern) {
			continue
		}
		b.deliver(topic, ev, s.fn)
	}
}

func (b *Bus) deliver(topic Topic, ev Viewport, fn Handler) {
	if b.PanicHandler != nil {
		defer func() {
			if r := recover(); r != nil {
				b.panicked++
				b.PanicHandler(topic, r)
			}
		}()
	}
	fn(topic, ev)
	b.delivered++
}

// Stats reports bus activity counters.
type Stats struct {
	Published uint64
	Delivered uint64
	Panicked  uint64
}

// Stats returns a snapshot of the bus counters.
func (b *Bus) Stats() Stats {
	return Stats{
		Published: b.published,
		Delivered: b.delivered,
		Panicked:  b.panicked,
	}
}

// String implements fmt.Stringer for debug logging.
func (s Stats) String() string {
	return fmt.Sprintf("published=%d delivered=%d panicked=%d", s.Published, s.Delivered, s.Panicked)
}
