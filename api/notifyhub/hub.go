package notifyhub

import (
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/moyoez/localshare-go/tool"
	"github.com/moyoez/localshare-go/types"
)

// WriteWait bounds each websocket write so a stalled client cannot hold up the server.
var WriteWait = 2 * time.Second

// Hub fans lifecycle events out to every connected admin websocket.
type Hub struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]*sync.Mutex
	last  []byte
}

func New() *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Register adds conn and replays the latest event so the client starts in sync.
func (h *Hub) Register(conn *websocket.Conn) {
	writeMu := &sync.Mutex{}
	h.mu.Lock()
	h.conns[conn] = writeMu
	last := h.last
	h.mu.Unlock()
	if last != nil {
		h.write(conn, writeMu, last)
	}
}

// write sends payload with a deadline and drops the client on failure.
func (h *Hub) write(conn *websocket.Conn, writeMu *sync.Mutex, payload []byte) {
	writeMu.Lock()
	_ = conn.SetWriteDeadline(time.Now().Add(WriteWait))
	err := conn.WriteMessage(websocket.TextMessage, payload)
	writeMu.Unlock()
	if err != nil {
		tool.DefaultLogger.Debugf("[Admin] Dropping status client: %v", err)
		h.Unregister(conn)
		_ = conn.Close()
	}
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

// Len reports the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// OnStatus broadcasts ev as JSON.
func (h *Hub) OnStatus(ev types.StatusEvent) {
	payload, err := sonic.Marshal(ev)
	if err != nil {
		tool.DefaultLogger.Errorf("[Admin] Failed to encode status event: %v", err)
		return
	}

	h.mu.Lock()
	h.last = payload
	type target struct {
		conn *websocket.Conn
		mu   *sync.Mutex
	}
	targets := make([]target, 0, len(h.conns))
	for c, mu := range h.conns {
		targets = append(targets, target{c, mu})
	}
	h.mu.Unlock()

	for _, t := range targets {
		h.write(t.conn, t.mu, payload)
	}
}
