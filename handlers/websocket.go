package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"reminders-server/common"
	"reminders-server/logging"
	"reminders-server/middleware"
	"reminders-server/models"
	"reminders-server/respond"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
	sendBuffer     = 64
)

var welcomeMessage = models.WSMessage{
	Type:    models.WSTypeWelcome,
	Payload: map[string]string{"message": "connected"},
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID string
}

// Hub fans reminder changes out to the sockets of the owning user.
type Hub struct {
	clients    map[*Client]bool
	unregister chan *Client
	stopped    chan struct{}
	closed     bool
	mu         sync.RWMutex

	auth middleware.Authenticator
	rs   *respond.Responder
	log  logging.Logger
}

func NewHub(auth middleware.Authenticator, rs *respond.Responder, log logging.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		unregister: make(chan *Client, 16),
		stopped:    make(chan struct{}),
		auth:       auth,
		rs:         rs,
		log:        log.With("component", "ws"),
	}
}

// Run processes unregistrations until ctx is cancelled, then closes every
// client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.stopped)

	for {
		select {
		case client := <-h.unregister:
			if h.remove(client) {
				h.log.Debug(ctx, "client unregistered", "user_id", client.userID)
			}

		case <-ctx.Done():
			h.mu.Lock()
			h.closed = true
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		}
	}
}

// add registers client with the welcome frame already queued, so it is
// always the first thing the socket receives.
func (h *Hub) add(client *Client) bool {
	data, err := json.Marshal(welcomeMessage)
	if err != nil {
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	client.send <- data
	h.clients[client] = true
	return true
}

// remove drops client and closes its send queue. It reports whether the
// client was still registered.
func (h *Hub) remove(client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return false
	}
	delete(h.clients, client)
	close(client.send)
	return true
}

// SendToUser delivers msg to every socket of userID. Clients whose buffer
// is full are dropped.
func (h *Hub) SendToUser(userID string, msg models.WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Error(context.Background(), "marshal ws message", "type", msg.Type, "error", err)
		return
	}

	var stale []*Client
	sent := 0
	h.mu.RLock()
	for client := range h.clients {
		if client.userID != userID {
			continue
		}
		select {
		case client.send <- data:
			sent++
		default:
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		if h.remove(client) {
			h.log.Warn(context.Background(), "dropped slow client", "user_id", userID)
		}
	}
	h.log.Debug(context.Background(), "sent to user", "type", msg.Type, "user_id", userID, "connections", sent)
}

// DisconnectUser closes all sockets of userID.
func (h *Hub) DisconnectUser(userID string) {
	h.mu.Lock()
	removed := 0
	for client := range h.clients {
		if client.userID == userID {
			delete(h.clients, client)
			close(client.send)
			removed++
		}
	}
	h.mu.Unlock()

	if removed > 0 {
		h.log.Info(context.Background(), "disconnected user sockets", "user_id", userID, "count", removed)
	}
}

// ConnectionCount returns the number of sockets open for userID.
func (h *Hub) ConnectionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for client := range h.clients {
		if client.userID == userID {
			n++
		}
	}
	return n
}

// HandleWebSocket authenticates with the token query parameter or the
// X-Authorization header, then upgrades.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = r.Header.Get(middleware.AuthHeader)
	}
	if token == "" {
		respond.Message(w, http.StatusUnauthorized, "Authorization token required")
		return
	}

	user, err := h.auth.Authenticate(r.Context(), token)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			respond.Message(w, http.StatusUnauthorized, respond.MsgUnauthorized)
			return
		}
		h.rs.Internal(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn(r.Context(), "upgrade failed", "user_id", user.ID, "error", err)
		return
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		userID: user.ID,
	}

	if !h.add(client) {
		conn.Close()
		return
	}
	h.log.Debug(r.Context(), "client registered", "user_id", user.ID)

	go client.writePump()
	go client.readPump()
}

// readPump only services control frames; clients have nothing to say.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.stopped:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Debug(context.Background(), "read error", "user_id", c.userID, "error", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
