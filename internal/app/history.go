package app

import "irradiance-map.klederson.com/internal/emitter"

// History is a circular buffer of parameter snapshots used for undo. When
// full, pushing overwrites the oldest snapshot.
type History struct {
	buf   []emitter.Params
	pos   int
	count int
}

// NewHistory creates a new circular buffer with the given capacity.
func NewHistory(capacity int) *History {
	return &History{
		buf: make([]emitter.Params, capacity),
	}
}

// Push records a snapshot.
func (h *History) Push(p emitter.Params) {
	h.buf[h.pos] = p
	h.pos = (h.pos + 1) % len(h.buf)
	if h.count < len(h.buf) {
		h.count++
	}
}

// Pop removes and returns the most recent snapshot.
func (h *History) Pop() (emitter.Params, bool) {
	if h.count == 0 {
		return emitter.Params{}, false
	}
	h.pos = (h.pos - 1 + len(h.buf)) % len(h.buf)
	p := h.buf[h.pos]
	h.buf[h.pos] = emitter.Params{}
	h.count--
	return p, true
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return h.count
}
