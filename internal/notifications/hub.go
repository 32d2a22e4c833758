package notifications

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
)

const (
	// Max connections per authenticated user.
	maxConnsPerUser = 8
	// Max total connections.
	maxTotalConns = 10000
)

// Hub fans feed events out to every connected websocket client. All
// subscribers see the same public feed, so there is no per-user routing.
type Hub struct {
	mu         sync.RWMutex
	conns      map[*Client]struct{}
	perUser    map[uint]int
	totalConns int
	shutdown   chan struct{}
}

// NewHub creates a new feed hub.
func NewHub() *Hub {
	return &Hub{
		conns:    make(map[*Client]struct{}),
		perUser:  make(map[uint]int),
		shutdown: make(chan struct{}),
	}
}

// Register adds a connection to the hub. userID is zero for anonymous
// viewers; authenticated users are capped per user.
func (h *Hub) Register(userID uint, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.totalConns >= maxTotalConns {
		return nil, errors.New("server connection limit reached")
	}
	if userID != 0 && h.perUser[userID] >= maxConnsPerUser {
		return nil, errors.New("user connection limit reached")
	}

	client := NewClient(h, conn, userID)
	h.conns[client] = struct{}{}
	h.totalConns++
	if userID != 0 {
		h.perUser[userID]++
	}
	return client, nil
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[client]; !ok {
		return
	}
	delete(h.conns, client)
	h.totalConns--
	if client.UserID != 0 {
		h.perUser[client.UserID]--
		if h.perUser[client.UserID] <= 0 {
			delete(h.perUser, client.UserID)
		}
	}
}

// ConnectionCount returns the number of currently registered clients.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.totalConns
}

// BroadcastAll sends a message to every connected client.
func (h *Hub) BroadcastAll(message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	data := []byte(message)
	for c := range h.conns {
		c.TrySend(data)
	}
}

// StartWiring connects the Notifier to this hub: feed events arriving on the
// Redis channel are broadcast to every connected client.
func (h *Hub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartFeedSubscriber(ctx, h.BroadcastAll)
}

// Shutdown gracefully closes all websocket connections.
func (h *Hub) Shutdown(_ context.Context) error {
	close(h.shutdown)

	h.mu.Lock()
	for client := range h.conns {
		if client.Conn == nil {
			continue
		}
		if err := client.Conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "Server shutting down")); err != nil {
			log.Printf("failed to write close message for user %d: %v", client.UserID, err)
		}
		if err := client.Conn.Close(); err != nil {
			log.Printf("failed to close websocket for user %d: %v", client.UserID, err)
		}
	}
	h.conns = make(map[*Client]struct{})
	h.perUser = make(map[uint]int)
	h.totalConns = 0
	h.mu.Unlock()

	return nil
}
