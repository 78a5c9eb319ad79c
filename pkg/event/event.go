// Package event is an in-process publish/subscribe bus for inventory changes.
package event

import (
	"sync"
)

// Wildcard subscribes a handler to every event name.
const Wildcard = "*"

// Event is one published change.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data"`
}

// Handler receives a published event.
type Handler func(Event)

// Bus dispatches events to listeners. The zero value is not usable; call NewBus.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: map[string][]Handler{}}
}

// Listen registers handler for name, or for every event when name is Wildcard.
func (b *Bus) Listen(name string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], handler)
}

// Fire dispatches synchronously, named listeners first, then wildcard ones.
func (b *Bus) Fire(name string, data any) {
	ev := Event{Name: name, Data: data}
	for _, h := range b.listeners(name) {
		h(ev)
	}
}

// FireAsync dispatches each listener in its own goroutine and returns at once.
func (b *Bus) FireAsync(name string, data any) {
	ev := Event{Name: name, Data: data}
	for _, h := range b.listeners(name) {
		go h(ev)
	}
}

// Flush removes all listeners.
func (b *Bus) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = map[string][]Handler{}
}

func (b *Bus) listeners(name string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	hs := make([]Handler, 0, len(b.handlers[name])+len(b.handlers[Wildcard]))
	hs = append(hs, b.handlers[name]...)
	if name != Wildcard {
		hs = append(hs, b.handlers[Wildcard]...)
	}
	return hs
}
