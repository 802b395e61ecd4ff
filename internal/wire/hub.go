package wire

import (
	"context"
	"log"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/ctrlstudio/modelsync/internal/model"
)

// Hub tracks connected clients and fans sync events out to them. It
// implements eventbus.Handler so it can be subscribed directly to the bus.
type Hub struct {
	mu    sync.Mutex
	next  int
	conns map[int]*client
}

type client struct {
	conn  *websocket.Conn
	actor string
	wmu   sync.Mutex // serialises writes per connection
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[int]*client)}
}

func (h *Hub) register(conn *websocket.Conn, actor string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	h.conns[h.next] = &client{conn: conn, actor: actor}
	return h.next
}

func (h *Hub) unregister(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, id)
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// HandleEvent broadcasts one applied sync event to every client, including
// the originator, whose UI reconciles by event id.
func (h *Hub) HandleEvent(ctx context.Context, evt model.SyncEvent) error {
	h.mu.Lock()
	clients := make([]*client, 0, len(h.conns))
	for _, c := range h.conns {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	msg := ServerMessage{Type: "event", Data: evt}
	for _, c := range clients {
		c.send(ctx, msg)
	}
	return nil
}

func (c *client) send(ctx context.Context, msg ServerMessage) {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if err := wsjson.Write(ctx, c.conn, msg); err != nil {
		log.Printf("wire: write to %s failed: %v", c.actor, err)
	}
}
