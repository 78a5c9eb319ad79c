// Package ws pushes server events to WebSocket clients and other feed
// subscribers.
//
//	hub := ws.NewHub()
//	go hub.Run(ctx)
//	r.Get("/ws/inventory", "inventory.feed", func(w http.ResponseWriter, r *http.Request) {
//	    ws.Upgrade(w, r, hub)
//	})
//	hub.Broadcast(payload)
//
// The feed is one-way: client frames other than control frames are read and
// dropped.
package ws

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shashiranjanraj/stockroom/pkg/logger"
	"github.com/shashiranjanraj/stockroom/pkg/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
	sendBuffer     = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The feed is authenticated by bearer token, not cookies.
	CheckOrigin: func(*http.Request) bool { return true },
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("ws: unexpected close", "error", err)
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Hub tracks connected clients and fans messages out to them. All client
// bookkeeping happens on the Run goroutine.
type Hub struct {
	clients    map[*client]struct{}
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}
	count      atomic.Int64
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]struct{}),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
	}
}

// Run serves the hub until ctx ends, then disconnects every client. Run
// must be called once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.setCount()
			logger.Debug("ws: client connected", "total", len(h.clients))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
				logger.Debug("ws: client disconnected", "total", len(h.clients))
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow consumer.
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
	h.setCount()
}

func (h *Hub) setCount() {
	h.count.Store(int64(len(h.clients)))
	metrics.FeedClients.Set(float64(len(h.clients)))
}

// Broadcast queues msg for every client. It never blocks; when the queue is
// full the message is dropped and false returned.
func (h *Hub) Broadcast(msg []byte) bool {
	select {
	case h.broadcast <- msg:
		return true
	default:
		return false
	}
}

// Subscribe registers a consumer that is not a WebSocket, such as an event
// stream. The channel is closed once ctx ends, the hub stops or the consumer
// falls behind. ok is false when the hub is no longer running.
func (h *Hub) Subscribe(ctx context.Context) (msgs <-chan []byte, ok bool) {
	c := &client{hub: h, send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- c:
	case <-h.done:
		return nil, false
	case <-ctx.Done():
		return nil, false
	}
	go func() {
		<-ctx.Done()
		select {
		case h.unregister <- c:
		case <-h.done:
		}
	}()
	return c.send, true
}

// ClientCount is the number of registered clients.
func (h *Hub) ClientCount() int { return int(h.count.Load()) }

// Upgrade completes the WebSocket handshake and registers the connection.
// On failure the upgrader has already written an HTTP error.
func Upgrade(w http.ResponseWriter, r *http.Request, hub *Hub) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("ws: upgrade failed", "error", err)
		return
	}
	c := &client{hub: hub, conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case hub.register <- c:
	case <-hub.done:
		conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}
