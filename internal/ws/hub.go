// Package ws implements the realtime broadcast channel: every connected
// client receives the full order collection after each mutation and once
// on connect, under the event name orders_updated.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"tableside/internal/models"
)

const EventOrdersUpdated = "orders_updated"

// Event is one broadcast frame. Data is always the complete collection;
// subscribers treat it as replacement state, never a patch.
type Event struct {
	Event string         `json:"event"`
	Data  []models.Order `json:"data"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The REST layer already allows any origin; the socket follows suit.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Hub struct {
	logger  *zap.Logger
	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[*client]struct{}),
	}
}

// Serve upgrades the request and registers the connection. The current
// snapshot is queued immediately so late joiners converge without polling.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, snapshot []models.Order) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := newClient(h, conn)
	// Queue the snapshot before registering so a concurrent publish cannot
	// be overwritten by older state.
	c.enqueue(marshalEvent(h.logger, snapshot))

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return nil
	}
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("ws client connected", zap.Int("clients", n))
	c.start()
	return nil
}

// PublishOrders implements the broadcaster boundary used by the order
// operations. Delivery is fire-and-forget: a subscriber that cannot keep
// up is dropped rather than allowed to back-pressure a mutation.
func (h *Hub) PublishOrders(orders []models.Order) {
	frame := marshalEvent(h.logger, orders)
	if frame == nil {
		return
	}
	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.enqueue(frame)
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
	}
	n := len(h.clients)
	h.mu.Unlock()
	if ok {
		h.logger.Info("ws client disconnected", zap.Int("clients", n))
	}
}

// Close disconnects every subscriber; used on shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	for _, c := range clients {
		c.stop()
	}
}

func marshalEvent(logger *zap.Logger, orders []models.Order) []byte {
	if orders == nil {
		orders = []models.Order{}
	}
	frame, err := json.Marshal(Event{Event: EventOrdersUpdated, Data: orders})
	if err != nil {
		logger.Error("marshal broadcast frame", zap.Error(err))
		return nil
	}
	return frame
}
