// Package realtime pushes order events to connected back-office sessions over
// websockets. Delivery is best effort and at-least-once per connected client;
// there is no ordering guarantee across events and a dead client is dropped
// instead of failing the write that triggered the broadcast.
package realtime

import (
	"encoding/json"
	"sync"

	"github.com/smsgrouprw-hash/Talabat-sub000/internal/logger"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/metrics"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/order"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Conn is the slice of *websocket.Conn the hub needs.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one connected session. Admin sessions subscribe with an empty
// supplier id and receive every event.
type Client struct {
	supplierID string
	conn       Conn
	writeMu    sync.Mutex
}

// write serializes writes to the connection. Broadcasts come from concurrent
// request handlers and the cron sweep, and a websocket connection tolerates
// only one writer at a time.
func (c *Client) write(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
}

var _ order.Feed = (*Hub)(nil)

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]bool)}
}

// Register adds a session to the hub. The caller owns the read loop and must
// call Unregister when the connection dies.
func (h *Hub) Register(supplierID string, conn Conn) *Client {
	c := &Client{supplierID: supplierID, conn: conn}

	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	logger.L().Info("feed client connected",
		zap.String("supplier_id", supplierID),
		zap.Int("client_count", h.ClientCount()),
	)
	return c
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()

	_ = c.conn.Close()
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastOrderEvent fans the event out to the owning supplier's sessions and
// every admin session. Write failures drop the client.
func (h *Hub) BroadcastOrderEvent(event order.OrderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.L().Error("feed event marshal failed", zap.Error(err))
		return
	}

	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		if c.supplierID == "" || c.supplierID == event.Order.SupplierID {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	metrics.FeedBroadcasts.Inc()

	for _, c := range targets {
		if err := c.write(data); err != nil {
			logger.L().Warn("feed write failed, dropping client",
				zap.String("supplier_id", c.supplierID),
				zap.Error(err),
			)
			metrics.FeedDroppedClients.Inc()
			h.Unregister(c)
		}
	}
}
