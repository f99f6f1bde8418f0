package httpapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/hamed0406/pingwatch/internal/domain"
)

const wsWriteTimeout = 5 * time.Second

// Same-origin check; an empty Origin header (non-browser client) passes.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return strings.EqualFold(strings.TrimSpace(u.Host), strings.TrimSpace(r.Host))
	},
}

// Hub pushes each finished cycle to connected websocket clients. It is
// registered with the dispatcher as an unconditional recorder.
type Hub struct {
	Logger *zap.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{Logger: logger, conns: make(map[*websocket.Conn]struct{})}
}

func (h *Hub) Name() string { return "ws" }

// Handle upgrades the request and parks the connection until the peer
// goes away. Clients only receive; inbound frames are drained.
func (h *Hub) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Record broadcasts the report. A dead connection is dropped, never an
// error for the cycle.
func (h *Hub) Record(ctx context.Context, report domain.CycleReport) error {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		_ = c.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := c.WriteJSON(report); err != nil {
			h.Logger.Debug("ws_client_dropped", zap.Error(err))
			h.drop(c)
		}
	}
	return nil
}

func (h *Hub) drop(c *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.conns[c]; ok {
		delete(h.conns, c)
		_ = c.Close()
	}
	h.mu.Unlock()
}

// Close disconnects every client, for shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	for c := range h.conns {
		_ = c.Close()
		delete(h.conns, c)
	}
	h.mu.Unlock()
}
