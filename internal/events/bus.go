// Package events is the single-process message bus between the race
// simulation and whatever presents it.
package events

import (
	"sync"
	"sync/atomic"
)

// Topic names a channel on the bus and fixes its payload type.
type Topic[T any] struct {
	name string
}

// NewTopic declares a topic.
func NewTopic[T any](name string) Topic[T] {
	return Topic[T]{name: name}
}

// Name returns the topic name.
func (t Topic[T]) Name() string { return t.name }

type listener struct {
	fn     func(any)
	active atomic.Bool
}

type envelope struct {
	topic   string
	payload any
}

// Bus delivers published payloads synchronously to the listeners of a topic
// in registration order. A publish issued from inside a listener is queued
// and delivered once the current event has reached every listener, so
// listeners always observe events in emission order.
type Bus struct {
	mu          sync.Mutex
	listeners   map[string][]*listener
	queue       []envelope
	dispatching bool
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{listeners: make(map[string][]*listener)}
}

// Subscribe registers fn for every payload published on topic.
func Subscribe[T any](b *Bus, topic Topic[T], fn func(T)) *Subscription {
	l := &listener{fn: func(v any) { fn(v.(T)) }}
	l.active.Store(true)

	b.mu.Lock()
	b.listeners[topic.name] = append(b.listeners[topic.name], l)
	b.mu.Unlock()

	return &Subscription{bus: b, topic: topic.name, l: l}
}

// Publish delivers payload to the listeners of topic.
func Publish[T any](b *Bus, topic Topic[T], payload T) {
	b.publish(topic.name, payload)
}

func (b *Bus) publish(topic string, payload any) {
	b.mu.Lock()
	b.queue = append(b.queue, envelope{topic: topic, payload: payload})
	if b.dispatching {
		b.mu.Unlock()
		return
	}
	b.dispatching = true
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.dispatching = false
		b.queue = nil
		b.mu.Unlock()
	}()

	for {
		b.mu.Lock()
		if len(b.queue) == 0 {
			b.mu.Unlock()
			return
		}
		ev := b.queue[0]
		b.queue = b.queue[1:]
		targets := append([]*listener(nil), b.listeners[ev.topic]...)
		b.mu.Unlock()

		for _, l := range targets {
			if l.active.Load() {
				l.fn(ev.payload)
			}
		}
	}
}

// Listeners reports how many listeners are registered on the named topic.
func (b *Bus) Listeners(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners[topic])
}

func (b *Bus) remove(topic string, l *listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.listeners[topic]
	for i, candidate := range list {
		if candidate == l {
			b.listeners[topic] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(b.listeners[topic]) == 0 {
		delete(b.listeners, topic)
	}
}

// Subscription is a registered listener.
type Subscription struct {
	bus   *Bus
	topic string
	l     *listener
	once  sync.Once
}

// Unsubscribe removes the listener. A listener removed while an event is
// being dispatched does not receive it. Calling Unsubscribe more than once is
// harmless.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.l.active.Store(false)
		s.bus.remove(s.topic, s.l)
	})
}

// Group releases a set of subscriptions together, typically on teardown of
// whatever registered them.
type Group struct {
	mu   sync.Mutex
	subs []*Subscription
}

// Add tracks s for release.
func (g *Group) Add(s *Subscription) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.subs = append(g.subs, s)
}

// Release unsubscribes everything added so far.
func (g *Group) Release() {
	g.mu.Lock()
	subs := g.subs
	g.subs = nil
	g.mu.Unlock()
	for _, s := range subs {
		s.Unsubscribe()
	}
}

// Len reports how many subscriptions are tracked.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.subs)
}
