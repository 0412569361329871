package loop

import (
	"sync"
	"time"
)

// Hub tracks the sessions of one server so they can be counted and told
// about a shutdown. Each session runs its own game; the hub shares no state
// between them.
type Hub struct {
	mu       sync.RWMutex
	sessions map[int]*Handle
	nextID   int
}

// Handle is a session's registration with a Hub.
type Handle struct {
	ID       int
	User     string
	shutdown chan struct{}
	once     sync.Once
}

// Shutdown is closed when the server is going down.
func (h *Handle) Shutdown() <-chan struct{} {
	return h.shutdown
}

func (h *Handle) notify() {
	h.once.Do(func() { close(h.shutdown) })
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		sessions: make(map[int]*Handle),
		nextID:   1,
	}
}

// Register adds a session and returns its handle.
func (hub *Hub) Register(user string) *Handle {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	h := &Handle{ID: hub.nextID, User: user, shutdown: make(chan struct{})}
	hub.nextID++
	hub.sessions[h.ID] = h
	return h
}

// Unregister removes a session.
func (hub *Hub) Unregister(h *Handle) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	delete(hub.sessions, h.ID)
}

// Len returns the number of registered sessions.
func (hub *Hub) Len() int {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	return len(hub.sessions)
}

// Shutdown notifies every session and waits for all of them to unregister,
// or until timeout. It reports how many sessions were still open.
func (hub *Hub) Shutdown(timeout time.Duration) int {
	hub.mu.RLock()
	for _, h := range hub.sessions {
		h.notify()
	}
	hub.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if n := hub.Len(); n == 0 {
			return 0
		}
		select {
		case <-deadline:
			return hub.Len()
		case <-ticker.C:
		}
	}
}
