package handler

import (
	"net/http"
	"sync"
	"time"

	"github.com/emirpasha/vidshare/internal/broker"
	"github.com/emirpasha/vidshare/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	feedWriteWait      = 10 * time.Second
	feedMaxMessageSize = 1024 // the feed is push-only; clients send nothing meaningful
)

var feedUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // add origin check in production
	},
}

// FeedHandler pushes engagement events (new comments, like toggles) to
// connected websocket clients. The feed is read-only: clients receive events
// and never issue commands.
type FeedHandler struct {
	broker  broker.EventBroker
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

func NewFeedHandler(eventBroker broker.EventBroker) *FeedHandler {
	return &FeedHandler{
		broker:  eventBroker,
		clients: make(map[*websocket.Conn]bool),
	}
}

// Start subscribes to the broker and fans events out to connected clients.
// Call once, before the router starts serving.
func (h *FeedHandler) Start() error {
	events, err := h.broker.Subscribe()
	if err != nil {
		return err
	}

	go func() {
		for event := range events {
			h.broadcast(event)
		}
	}()

	return nil
}

// HandleFeed upgrades the connection and keeps it registered until the client
// goes away.
// GET /ws/feed
func (h *FeedHandler) HandleFeed(c *gin.Context) {
	conn, err := feedUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Warn("Feed upgrade failed",
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	logger.Log.Debug("Feed client connected",
		zap.String("ip", c.ClientIP()),
		zap.Int("clients", h.ClientCount()),
	)

	// Reader loop: discard anything the client sends, detect disconnect.
	conn.SetReadLimit(feedMaxMessageSize)
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *FeedHandler) broadcast(event broker.Event) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
		if err := conn.WriteJSON(event); err != nil {
			// Slow or gone; drop the client rather than stall the feed.
			h.drop(conn)
		}
	}
}

func (h *FeedHandler) drop(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
	h.mu.Unlock()
}

// ClientCount reports connected feed clients for the health endpoint.
func (h *FeedHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
