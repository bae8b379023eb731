// notifications/hub.go - Live feed for the admin approval dashboard
package notifications

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Event is what a connected dashboard receives when the review queue changes.
// Reconnecting clients are expected to refetch the pending list; the feed
// carries no queue state of its own.
type Event struct {
	Type          string `json:"type"` // team_submitted | team_approved | team_rejected
	PendingTeamID uint   `json:"pendingTeamId"`
	Ticker        string `json:"ticker"`
	Name          string `json:"name"`
}

// EventWriter is the part of a websocket connection the hub writes through.
// *websocket.Conn satisfies it.
type EventWriter interface {
	WriteJSON(v interface{}) error
}

// client pairs a connection with a write mutex. Websocket connections do not
// support concurrent writers, and Broadcast can be called from any number of
// request handlers at once.
type client struct {
	mu sync.Mutex
	w  EventWriter
}

// Hub fans review-queue events out to connected admin dashboards.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*client
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string]*client)}
}

// Register adds a connection and returns its id for Unregister.
func (h *Hub) Register(w EventWriter) string {
	id := uuid.New().String()
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[id] = &client{w: w}
	return id
}

func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, id)
}

// Broadcast sends the event to every connected dashboard. Writes to a single
// connection are serialized through its mutex. Write failures are logged and
// the connection is left for its read loop to reap.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, c := range h.conns {
		c.mu.Lock()
		err := c.w.WriteJSON(event)
		c.mu.Unlock()
		if err != nil {
			log.Printf("websocket write error for client %s: %v", id, err)
		}
	}
}

// ClientCount returns the number of connected dashboards.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
