package websocket

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// TopicExports carries export progress, completion and failure events.
const TopicExports = "exports"

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// the UI is served from the same process; any origin is accepted
		return true
	},
}

// Hub fans messages out to every connection subscribed to a topic.
type Hub struct {
	connections map[string]map[*Connection]bool

	register   chan *Connection
	unregister chan *Connection

	broadcast chan *Message
	done      chan struct{}

	mu sync.RWMutex
}

type Connection struct {
	ws    *websocket.Conn
	topic string
	send  chan *Message
	hub   *Hub
}

type Message struct {
	Topic   string      `json:"topic,omitempty"`
	Type    string      `json:"type"`
	Channel string      `json:"channel,omitempty"`
	Data    interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[string]map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		broadcast:   make(chan *Message, 256),
		done:        make(chan struct{}),
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.RLock()
			var conns []*Connection
			for _, m := range h.connections {
				for c := range m {
					conns = append(conns, c)
				}
			}
			h.mu.RUnlock()

			// closing outside the lock lets the pumps exit
			for _, c := range conns {
				_ = c.ws.Close()
			}

			return
		case conn := <-h.register:
			h.mu.Lock()
			if h.connections[conn.topic] == nil {
				h.connections[conn.topic] = make(map[*Connection]bool)
			}
			h.connections[conn.topic][conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			h.remove(conn)
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.connections[message.Topic] {
				select {
				case conn.send <- message:
				default:
					// slow consumer
					h.remove(conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove must be called with mu held.
func (h *Hub) remove(conn *Connection) {
	connections, ok := h.connections[conn.topic]
	if !ok {
		return
	}
	if _, exists := connections[conn]; !exists {
		return
	}
	delete(connections, conn)
	close(conn.send)
	if len(connections) == 0 {
		delete(h.connections, conn.topic)
	}
}

// Subscribers reports how many connections listen on topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections[topic])
}

func (h *Hub) Broadcast(topic string, message *Message) {
	message.Topic = topic
	select {
	case h.broadcast <- message:
	default:
		log.Printf("[WS] broadcast channel is full, dropping %s message for topic %q", message.Type, topic)
	}
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request, topic string) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] upgrade error: %v", err)
		return
	}

	conn := &Connection{
		ws:    ws,
		topic: topic,
		send:  make(chan *Message, 256),
		hub:   h,
	}

	select {
	case h.register <- conn:
	case <-h.done:
		_ = ws.Close()
		return
	}

	go conn.writePump()
	go conn.readPump()
}

const (
	writeWait = 10 * time.Second

	pongWait = 60 * time.Second

	pingPeriod = (pongWait * 9) / 10
)

func (c *Connection) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.ws.Close()
	}()

	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, _, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] read error: %v", err)
			}
			break
		}
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.ws.WriteJSON(message); err != nil {
				log.Printf("[WS] write error: %v", err)
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
