package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/basalt-render/raymarch/internal/platform"
)

const writeTimeout = 10 * time.Second

// Output is one rendered artifact, base64-encoded when binary, ready to
// embed in a push message (SPEC_FULL §6's websocket protocol).
type Output struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

// pushMessage is the JSON envelope pushed to every connected client after a
// render completes (SPEC_FULL §4.M/§6).
type pushMessage struct {
	Scene   string   `json:"scene"`
	Outputs []Output `json:"outputs"`
}

// client wraps one subscribed websocket connection, identified by a
// google/uuid client id, using the same send-channel pattern as a
// collaborative-editing hub's per-client writer.
type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
}

// hub fans render-completion pushes out to every connected client.
type hub struct {
	logger platform.Logger

	mu      sync.RWMutex
	clients map[uuid.UUID]*client
}

func newHub(logger platform.Logger) *hub {
	return &hub{logger: logger, clients: make(map[uuid.UUID]*client)}
}

func (h *hub) register(conn *websocket.Conn) *client {
	c := &client{id: uuid.New(), conn: conn, send: make(chan []byte, 16)}
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	return c
}

func (h *hub) unregister(c *client) {
	h.mu.Lock()
	delete(h.clients, c.id)
	h.mu.Unlock()
	close(c.send)
}

func (h *hub) broadcast(scene string, outputs []Output) {
	payload, err := json.Marshal(pushMessage{Scene: scene, Outputs: outputs})
	if err != nil {
		h.logger.Printf("marshal push message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.send <- payload:
		default:
			h.logger.Printf("client %s send buffer full, dropping push", c.id)
		}
	}
}

// writePump drains c.send to the underlying connection until it is closed.
func (c *client) writePump(ctx context.Context) {
	for msg := range c.send {
		writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
		err := c.conn.Write(writeCtx, websocket.MessageText, msg)
		cancel()
		if err != nil {
			return
		}
	}
}
