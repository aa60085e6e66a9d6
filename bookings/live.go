package bookings

import (
	"encoding/json"
	"log"
	"net/http"
	"slices"
	"time"

	"rihla/middleware"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// Hub fans booking events out to connected admin dashboards so new bookings
// and status changes show up without polling.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
}

type Client struct {
	conn *websocket.Conn
	Send chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
		case msg := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.Send <- msg:
				default:
					// Slow consumer, drop it
					delete(h.clients, client)
					close(client.Send)
				}
			}
		case <-h.done:
			for client := range h.clients {
				close(client.Send)
			}
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// BroadcastJSON queues a payload for every connected client.
func (h *Hub) BroadcastJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("live: failed to marshal broadcast: %v", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		log.Println("live: broadcast buffer full, dropping event")
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeLive handles GET /api/live/bookings (admin, websocket). Browsers
// cannot send an Authorization header on the upgrade request, so the token
// travels as a query parameter instead.
func (h *Hub) ServeLive(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, err := middleware.ValidateJWT("Bearer " + r.URL.Query().Get("token"))
	if err != nil || !slices.Contains(claims.Role, "admin") {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("live: upgrade failed: %v", err)
		return
	}

	client := &Client{conn: conn, Send: make(chan []byte, 16)}
	h.register <- client

	go client.writePump()
	go client.readPump(h)
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.Send {
		c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump discards inbound frames; the feed is one-way. It exists to
// notice the peer going away.
func (c *Client) readPump(h *Hub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
