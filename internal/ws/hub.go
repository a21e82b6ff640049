package ws

import (
	"encoding/json"
	"sync"
	"time"

	"billboard_compliance/internal/logger"
)

// ActivityEvent is pushed to dashboard clients when a report moves through
// review or a violation is confirmed
type ActivityEvent struct {
	Type          string    `json:"type"`
	ReportID      int64     `json:"report_id,omitempty"`
	ViolationType string    `json:"violation_type,omitempty"`
	Severity      string    `json:"severity,omitempty"`
	Latitude      float64   `json:"latitude,omitempty"`
	Longitude     float64   `json:"longitude,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Hub fans activity events out to connected dashboard clients
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]bool)}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
	logger.Debug("dashboard client connected", "clients", h.ClientCount())
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.Send)
	}
	h.mu.Unlock()
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends the event to every connected client. Slow clients whose
// send buffer is full are dropped.
func (h *Hub) Broadcast(ev ActivityEvent) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(ev)
	if err != nil {
		logger.Error("failed to marshal activity event", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.Send <- data:
		default:
			delete(h.clients, c)
			close(c.Send)
		}
	}
}
