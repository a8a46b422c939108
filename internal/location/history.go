package location

import "sync"

// History is a stack of visited locations with change listeners.
type History struct {
	mu        sync.Mutex
	entries   []Location
	listeners map[int]func(Location)
	nextID    int
}

func NewHistory(initial Location) *History {
	return &History{
		entries:   []Location{initial},
		listeners: make(map[int]func(Location)),
	}
}

func (h *History) Current() Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[len(h.entries)-1]
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Push navigates to loc, adding a history entry.
func (h *History) Push(loc Location) {
	h.mu.Lock()
	h.entries = append(h.entries, loc)
	h.mu.Unlock()
	h.emit(loc)
}

// Replace swaps the current entry for loc without navigating.
func (h *History) Replace(loc Location) {
	h.mu.Lock()
	last := len(h.entries) - 1
	if h.entries[last].Equal(loc) {
		h.mu.Unlock()
		return
	}
	h.entries[last] = loc
	h.mu.Unlock()
	h.emit(loc)
}

// Back pops the current entry. The first entry is never popped.
func (h *History) Back() bool {
	h.mu.Lock()
	if len(h.entries) < 2 {
		h.mu.Unlock()
		return false
	}
	h.entries = h.entries[:len(h.entries)-1]
	loc := h.entries[len(h.entries)-1]
	h.mu.Unlock()
	h.emit(loc)
	return true
}

func (h *History) Subscribe(fn func(Location)) (unsubscribe func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.listeners, id)
		h.mu.Unlock()
	}
}

func (h *History) emit(loc Location) {
	h.mu.Lock()
	fns := make([]func(Location), 0, len(h.listeners))
	for _, fn := range h.listeners {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(loc)
	}
}
