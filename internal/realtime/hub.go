package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	"github.com/emilyand-i/AgileWebGroup82/pkg/logger"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 64
)

// Message is the envelope written to websocket clients.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client is one websocket connection of an account. An account may hold
// several at once, one per open tab or device.
type Client struct {
	AccountID uint
	Send      chan []byte
	conn      *websocket.Conn
}

type delivery struct {
	accountID uint
	data      []byte
}

// Hub fans committed notifications out to their receivers' connections.
type Hub struct {
	clients    map[uint]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan delivery
	done       chan struct{}
	mutex      sync.RWMutex
	upgrader   websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan delivery, 256),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// WithAllowedOrigins limits upgrades to browsers on the given origins, the
// same list CORS uses. "*" allows any origin.
func (h *Hub) WithAllowedOrigins(origins []string) *Hub {
	h.upgrader.CheckOrigin = originChecker(origins)
	return h
}

func originChecker(origins []string) func(*http.Request) bool {
	allowed := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		if origin == "*" {
			return func(*http.Request) bool { return true }
		}
		allowed[strings.ToLower(strings.TrimRight(origin, "/"))] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			// not a browser
			return true
		}
		_, ok := allowed[strings.ToLower(origin)]
		return ok
	}
}

// Run serves registrations and deliveries until ctx is cancelled, then
// closes every remaining client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for accountID, set := range h.clients {
				for client := range set {
					close(client.Send)
				}
				delete(h.clients, accountID)
			}
			h.mutex.Unlock()
			return

		case client := <-h.register:
			h.mutex.Lock()
			set, ok := h.clients[client.AccountID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.AccountID] = set
			}
			set[client] = struct{}{}
			h.mutex.Unlock()
			logger.Debug("Realtime client connected", "account_id", client.AccountID)

		case client := <-h.unregister:
			h.remove(client)
			logger.Debug("Realtime client disconnected", "account_id", client.AccountID)

		case d := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients[d.accountID] {
				select {
				case client.Send <- d.data:
				default:
					// slow consumer, drop it rather than block the hub
					close(client.Send)
					delete(h.clients[d.accountID], client)
				}
			}
			if len(h.clients[d.accountID]) == 0 {
				delete(h.clients, d.accountID)
			}
			h.mutex.Unlock()
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	set, ok := h.clients[client.AccountID]
	if !ok {
		return
	}
	if _, ok := set[client]; ok {
		delete(set, client)
		close(client.Send)
	}
	if len(set) == 0 {
		delete(h.clients, client.AccountID)
	}
}

// Connections reports how many live connections accountID holds.
func (h *Hub) Connections(accountID uint) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[accountID])
}

// Publish queues a notification for its receiver. It never blocks the caller;
// when the queue is full the push is dropped and the notification stays
// available through the inbox.
func (h *Hub) Publish(notification models.Notification) {
	data, err := json.Marshal(Message{Type: "notification", Payload: notification})
	if err != nil {
		logger.Error("Failed to encode notification", "error", err, "notification_id", notification.ID)
		return
	}

	select {
	case h.broadcast <- delivery{accountID: notification.ReceiverID, data: data}:
	default:
		logger.Warn("Realtime queue full, dropping push", "notification_id", notification.ID)
	}
}

// Attach registers a client that is not backed by a websocket connection.
func (h *Hub) Attach(accountID uint) *Client {
	client := &Client{AccountID: accountID, Send: make(chan []byte, sendBufferSize)}
	h.enqueue(h.register, client)
	return client
}

func (h *Hub) Detach(client *Client) {
	h.enqueue(h.unregister, client)
}

// enqueue hands client to the run loop unless the hub has stopped.
func (h *Hub) enqueue(ch chan *Client, client *Client) {
	select {
	case ch <- client:
	case <-h.done:
	}
}

// ServeWS upgrades the request and streams accountID's notifications over it.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, accountID uint) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		AccountID: accountID,
		Send:      make(chan []byte, sendBufferSize),
		conn:      conn,
	}
	h.enqueue(h.register, client)

	go client.writePump()
	go client.readPump(h)
	return nil
}

// readPump only watches for close and pong frames; clients never send data.
func (c *Client) readPump(h *Hub) {
	defer func() {
		h.enqueue(h.unregister, c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("Websocket read error", "error", err, "account_id", c.AccountID)
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
		case message, ok := <-c.Send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
