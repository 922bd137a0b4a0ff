package session

import (
	"sync"

	"rankiou/internal/backend"
)

// Hub hands out one State per session key, created on first use. Keys are
// the user id for authenticated viewers and a per-browser id for guests;
// filter state never crosses sessions.
type Hub struct {
	mu     sync.Mutex
	remote backend.Service
	states map[string]*State
}

func NewHub(remote backend.Service) *Hub {
	return &Hub{
		remote: remote,
		states: make(map[string]*State),
	}
}

func (h *Hub) Get(key string) *State {
	h.mu.Lock()
	defer h.mu.Unlock()
	st, ok := h.states[key]
	if !ok {
		st = New(key, h.remote)
		h.states[key] = st
	}
	return st
}

// Len is exposed for the system info endpoint.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.states)
}

// Drop releases a session on sign-out.
func (h *Hub) Drop(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.states, key)
}
