// Package binding provides explicit two-way bindings between a form field and
// a piece of state: a value plus the handler that changes it.
package binding

import "sync"

// Field is the value+handler pair handed to a form widget.
type Field[T any] struct {
	Value    T
	OnChange func(T)
}

// Binding owns a value and notifies handlers when it changes. Handlers run
// one Set at a time and always receive the latest value, so after concurrent
// Sets the last value delivered equals Value(). A handler may set the value it
// was given; setting a different one from a handler deadlocks.
type Binding[T comparable] struct {
	mu        sync.RWMutex
	dispatch  sync.Mutex
	value     T
	delivered T
	handlers  []handler[T]
	nextID    int
}

type handler[T any] struct {
	id int
	fn func(T)
}

func New[T comparable](initial T) *Binding[T] {
	return &Binding[T]{value: initial, delivered: initial}
}

func (b *Binding[T]) Value() T {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.value
}

// Set stores v and runs the change handlers. Setting the current value is a
// no-op, which lets two bindings mirror each other without looping.
func (b *Binding[T]) Set(v T) bool {
	b.mu.Lock()
	if b.value == v {
		b.mu.Unlock()
		return false
	}
	b.value = v
	b.mu.Unlock()

	b.dispatch.Lock()
	defer b.dispatch.Unlock()

	b.mu.RLock()
	latest := b.value
	handlers := append([]handler[T](nil), b.handlers...)
	b.mu.RUnlock()

	// A concurrent Set already delivered this value.
	if latest == b.delivered {
		return true
	}
	b.delivered = latest
	for _, h := range handlers {
		h.fn(latest)
	}
	return true
}

// OnChange registers fn and returns a function that removes it.
func (b *Binding[T]) OnChange(fn func(T)) (remove func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers = append(b.handlers, handler[T]{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, h := range b.handlers {
			if h.id == id {
				b.handlers = append(b.handlers[:i], b.handlers[i+1:]...)
				return
			}
		}
	}
}

func (b *Binding[T]) Field() Field[T] {
	return Field[T]{
		Value:    b.Value(),
		OnChange: func(v T) { b.Set(v) },
	}
}
