package relay

import "sync"

// Subscriber abstracts a live relay connection.
type Subscriber interface {
	Send([]byte) error
	Close()
}

// Hub tracks live connections grouped into channels keyed by user ID. A
// connection lands in a channel when its client declares an identity via a
// join event; the claimed identity is not re-verified, matching the wire
// contract clients expect.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[Subscriber]struct{}
}

// NewHub creates an initialized Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[Subscriber]struct{})}
}

// Join registers a connection under the given user ID.
func (h *Hub) Join(userID string, client Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[userID]; !ok {
		h.clients[userID] = make(map[Subscriber]struct{})
	}
	h.clients[userID][client] = struct{}{}
}

// Leave removes a connection from the given user ID's channel.
func (h *Hub) Leave(userID string, client Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.clients[userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.clients, userID)
		}
	}
}

// Emit delivers payload to every connection in the user's channel, and to no
// one else. A user with no live connections simply receives nothing.
func (h *Hub) Emit(userID string, payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.clients[userID]
	if !ok {
		return
	}
	for c := range clients {
		if err := c.Send(payload); err != nil {
			c.Close()
			delete(clients, c)
		}
	}
	if len(clients) == 0 {
		delete(h.clients, userID)
	}
}
