package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ozenlabs/ozenembed/internal/server/api"
)

// ReloadEndpoint is where live reload clients connect. The path is namespaced
// so it cannot shadow files in the served tree.
const ReloadEndpoint = "/__ozen/reload"

const (
	reloadMessage      = "reload"
	reloadWriteTimeout = 5 * time.Second
)

type reloadClient struct {
	id   string
	conn *websocket.Conn
}

// ReloadHub tracks connected pages and tells them to reload when the served
// tree changes. Traffic is one way; clients never send.
type ReloadHub struct {
	clients map[string]*reloadClient
	mu      sync.RWMutex
}

func NewReloadHub() *ReloadHub {
	return &ReloadHub{
		clients: make(map[string]*reloadClient),
	}
}

// Handler upgrades the request and parks until the page goes away.
func (h *ReloadHub) Handler(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, nil)
	if err != nil {
		api.AbortWithError(c, http.StatusBadRequest, api.CodeWebsocketFailed, fmt.Errorf("websocket accept: %w", err))
		return
	}

	client := &reloadClient{id: uuid.NewString(), conn: conn}
	h.add(client)
	defer h.remove(client.id)

	// Reading only detects the close; payloads are ignored.
	ctx := c.Request.Context()
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			return
		}
	}
}

func (h *ReloadHub) add(client *reloadClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.id] = client
	slog.Debug("reload client registered", "id", client.id, "total", len(h.clients))
}

func (h *ReloadHub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[id]; ok {
		client.conn.Close(websocket.StatusNormalClosure, "bye")
		delete(h.clients, id)
		slog.Debug("reload client removed", "id", id, "total", len(h.clients))
	}
}

// ClientCount reports how many pages are currently connected.
func (h *ReloadHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast tells every connected page to reload itself.
func (h *ReloadHub) Broadcast(ctx context.Context) {
	h.mu.RLock()
	clients := make([]*reloadClient, 0, len(h.clients))
	for _, client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		writeCtx, cancel := context.WithTimeout(ctx, reloadWriteTimeout)
		if err := client.conn.Write(writeCtx, websocket.MessageText, []byte(reloadMessage)); err != nil {
			slog.Warn("reload write failed", "id", client.id, "error", err)
		}
		cancel()
	}
}

func (h *ReloadHub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.clients {
		client.conn.Close(websocket.StatusGoingAway, "shutdown")
		delete(h.clients, id)
	}
	slog.Debug("reload hub shutdown")
}

// reloadScript keeps served pages connected to the hub and reloads them on
// change. It reconnects quietly across server restarts.
var reloadScript = fmt.Sprintf(`<script>
(function () {
  function connect() {
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    var ws = new WebSocket(proto + location.host + "%s");
    ws.onmessage = function () { location.reload(); };
    ws.onclose = function () { setTimeout(connect, 1000); };
  }
  connect();
})();
</script>`, ReloadEndpoint)

// InjectReloadScript places the reload script just before the closing body
// tag, or appends it when the page has none.
func InjectReloadScript(page []byte) []byte {
	idx := lastBodyClose(page)
	if idx < 0 {
		out := make([]byte, 0, len(page)+len(reloadScript)+2)
		out = append(out, page...)
		out = append(out, '\n')
		out = append(out, reloadScript...)
		out = append(out, '\n')
		return out
	}

	out := make([]byte, 0, len(page)+len(reloadScript)+1)
	out = append(out, page[:idx]...)
	out = append(out, reloadScript...)
	out = append(out, '\n')
	out = append(out, page[idx:]...)
	return out
}

// lastBodyClose finds the final </body> tag case insensitively, byte indexed
// so multibyte content earlier in the page cannot skew the position.
func lastBodyClose(page []byte) int {
	const tag = "</body>"
	for i := len(page) - len(tag); i >= 0; i-- {
		if strings.EqualFold(string(page[i:i+len(tag)]), tag) {
			return i
		}
	}
	return -1
}
