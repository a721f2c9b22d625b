// Package notify pushes server status changes to the desktop shell over a Unix socket.
package notify

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/bytedance/sonic"

	"github.com/moyoez/localshare-go/tool"
	"github.com/moyoez/localshare-go/types"
)

// WriteChunkSize is the chunk size when writing a payload to the socket.
const WriteChunkSize = 32 * 1024

// SocketTimeout bounds dial, write and the optional reply read.
var SocketTimeout = 3 * time.Second

// Send writes one length-prefixed JSON notification to the Unix socket at socketPath:
// a 4-byte little-endian length, then the payload. A JSON reply with an "error" field
// is reported as an error.
func Send(notification *types.Notification, socketPath string) error {
	payload := []byte("{}")
	if notification != nil {
		var err error
		payload, err = sonic.Marshal(notification)
		if err != nil {
			return fmt.Errorf("failed to serialize notification: %w", err)
		}
	}
	if len(payload) > WriteChunkSize {
		return fmt.Errorf("notification payload too large: %d bytes (max %d)", len(payload), WriteChunkSize)
	}

	conn, err := net.DialTimeout("unix", socketPath, SocketTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to Unix socket %s: %w", socketPath, err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			tool.DefaultLogger.Errorf("[Notify] Failed to close Unix socket connection: %v", err)
		}
	}()
	_ = conn.SetDeadline(time.Now().Add(SocketTimeout))

	lengthBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(lengthBuf, uint32(len(payload)))
	if _, err := conn.Write(lengthBuf); err != nil {
		return fmt.Errorf("failed to write length to Unix socket: %w", err)
	}
	for off := 0; off < len(payload); {
		end := min(off+WriteChunkSize, len(payload))
		nw, err := conn.Write(payload[off:end])
		if err != nil {
			return fmt.Errorf("failed to write payload to Unix socket: %w", err)
		}
		off += nw
	}

	buf := make([]byte, 4096)
	n, err := conn.Read(buf)
	if err != nil && err != io.EOF {
		// The shell is not required to answer.
		tool.DefaultLogger.Debugf("[Notify] No reply from Unix socket: %v", err)
		return nil
	}
	if n > 0 {
		var response map[string]any
		if err := sonic.Unmarshal(buf[:n], &response); err == nil {
			if errMsg, ok := response["error"].(string); ok && errMsg != "" {
				return fmt.Errorf("shell returned error: %s", errMsg)
			}
		}
	}
	return nil
}

// SocketObserver forwards status events to a Unix socket without blocking the caller.
type SocketObserver struct {
	Path string
	// queue keeps delivery ordered; events are dropped when the shell lags far behind.
	queue chan types.StatusEvent
}

func NewSocketObserver(path string) *SocketObserver {
	o := &SocketObserver{Path: path, queue: make(chan types.StatusEvent, 16)}
	go o.run()
	return o
}

func (o *SocketObserver) OnStatus(ev types.StatusEvent) {
	select {
	case o.queue <- ev:
	default:
		tool.DefaultLogger.Warnf("[Notify] Dropping status event %q, socket queue full", ev.Status)
	}
}

func (o *SocketObserver) run() {
	for ev := range o.queue {
		if err := Send(StatusNotification(ev), o.Path); err != nil {
			tool.DefaultLogger.Debugf("[Notify] %v", err)
		}
	}
}

// StatusNotification wraps ev in the notification envelope the shell expects.
func StatusNotification(ev types.StatusEvent) *types.Notification {
	msg := ev.Status
	if ev.Address != "" {
		msg = fmt.Sprintf("%s at http://%s", ev.Status, ev.Address)
	}
	if ev.Error != "" {
		msg = ev.Status + ": " + ev.Error
	}
	data := map[string]any{"status": ev.Status}
	if ev.Address != "" {
		data["address"] = ev.Address
		data["port"] = ev.Port
	}
	if ev.Error != "" {
		data["error"] = ev.Error
	}
	return &types.Notification{
		Type:    types.NotifyTypeServerStatus,
		Title:   "LocalShare",
		Message: msg,
		Data:    data,
	}
}
