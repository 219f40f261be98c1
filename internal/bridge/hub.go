package bridge

import (
	"sync"

	"github.com/muurk/dfplayer/internal/logging"
	"github.com/muurk/dfplayer/internal/protocol"
	"go.uber.org/zap"
)

// Hub fans events out to connected clients. It implements
// protocol.EventHandler and never blocks the receive path: a client whose
// queue is full misses the event.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	onCount func(n int)
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// Count returns the number of connected clients
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// HandleEvent implements protocol.EventHandler
func (h *Hub) HandleEvent(e protocol.Event) {
	data, err := EncodeEvent(e)
	if err != nil {
		logging.Error("Failed to encode event", zap.Stringer("event", e), zap.Error(err))
		return
	}
	h.broadcast(data)
}

func (h *Hub) broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		if !c.enqueue(data) {
			logging.Warn("Client queue full, event dropped", zap.String("remote_addr", c.remoteAddr))
		}
	}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.notify(n)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	n := len(h.clients)
	h.mu.Unlock()
	h.notify(n)
}

// closeAll disconnects every client
func (h *Hub) closeAll() {
	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
}

func (h *Hub) notify(n int) {
	if h.onCount != nil {
		h.onCount(n)
	}
}

var _ protocol.EventHandler = (*Hub)(nil)
