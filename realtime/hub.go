package realtime

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/okapine/tablebook/models"
	"github.com/okapine/tablebook/utils"
)

// Rooms subscribers can join.
const (
	RoomKitchen = "kitchen"
	RoomAdmin   = "admin"
)

// Event names carried on the wire. Both order events carry the full committed
// order, nested table and items included, never deltas.
const (
	EventOrderCreated       = "order:created"
	EventOrderStatusUpdated = "order:statusUpdated"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type client struct {
	role  string
	rooms map[string]bool
}

// Hub fans lifecycle events out to websocket subscribers grouped into named
// rooms. Delivery is at-most-once: a failed write drops the connection and is
// never reported back to the mutation that produced the event.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]*client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]*client)}
}

// Register -> track a new connection with its role.
func (h *Hub) Register(conn *websocket.Conn, role string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = &client{role: role, rooms: make(map[string]bool)}
}

// Join -> subscribe a connection to a named room.
func (h *Hub) Join(conn *websocket.Conn, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[conn]; ok {
		c.rooms[room] = true
	}
}

// Unregister -> drop a connection and close it.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

// OrderCreated implements services.EventPublisher.
func (h *Hub) OrderCreated(order models.Order) {
	h.broadcast(RoomKitchen, Message{Event: EventOrderCreated, Data: order})
}

// OrderStatusUpdated implements services.EventPublisher.
func (h *Hub) OrderStatusUpdated(order models.Order) {
	h.broadcast(RoomKitchen, Message{Event: EventOrderStatusUpdated, Data: order})
}

func (h *Hub) broadcast(room string, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling %s event: %v", msg.Event, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn, c := range h.clients {
		if !c.rooms[room] {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending %s to %s client: %v", msg.Event, c.role, err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
