// Package network exposes the activity feed to spectators over
// WebSocket. The simulation itself never depends on it; the hub is an
// optional observer that tails the feed.
package network

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wardenworks/prisonsim/internal/feed"
	"github.com/wardenworks/prisonsim/internal/platform/logger"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// How often the hub polls the feed for new entries.
	pollInterval = 200 * time.Millisecond
)

// Client represents an active spectator connection.
type Client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub maintains the set of active spectators and broadcasts feed
// entries to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
	logger     *logger.Logger
}

// NewHub initializes a spectator hub.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     log,
	}
}

// Run handles client registration and broadcasting until the context is
// canceled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("Spectator hub shutting down.")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("New spectator connected")
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Info("Spectator disconnected")
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastEntry serializes a feed entry and sends it to every
// connected spectator.
func (h *Hub) BroadcastEntry(entry feed.Entry) {
	payload, err := json.Marshal(entry)
	if err != nil {
		h.logger.Error("Failed to serialize feed entry for broadcast: " + err.Error())
		return
	}
	h.broadcast <- payload
}

// StartFeedPoller spawns a goroutine that tails the activity feed and
// pushes new entries to the hub.
func (h *Hub) StartFeedPoller(ctx context.Context, log *feed.Log) {
	go func() {
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()

		seen := 0
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				entries := log.All()
				for _, entry := range entries[seen:] {
					h.BroadcastEntry(entry)
				}
				seen = len(entries)
			}
		}
	}()
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Spectators are read-only and local; any origin is fine.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades an HTTP request to a spectator connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed: " + err.Error())
		return
	}
	client := &Client{conn: conn, send: make(chan []byte, 64)}
	h.register <- client

	go client.writePump(h)
	go client.readPump(h)
}

// writePump pumps broadcast messages to the peer.
func (c *Client) writePump(h *Hub) {
	defer c.conn.Close()
	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump drains the connection; spectators send nothing meaningful,
// but reading is required to notice disconnects.
func (c *Client) readPump(h *Hub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
