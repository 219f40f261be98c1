package bridge

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/muurk/dfplayer/internal/logging"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	sendQueueSize = 64
)

// client is one websocket connection
type client struct {
	conn       *websocket.Conn
	remoteAddr string
	send       chan []byte
	done       chan struct{}
	closeOnce  sync.Once
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn:       conn,
		remoteAddr: conn.RemoteAddr().String(),
		send:       make(chan []byte, sendQueueSize),
		done:       make(chan struct{}),
	}
}

// enqueue queues a message without blocking. It reports false when the
// queue is full or the client is gone.
func (c *client) enqueue(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// readPump reads requests until the connection fails, handing each to exec
// and queueing the reply.
func (c *client) readPump(exec func(Request) error) {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Info("Connection closed or error reading message",
					zap.String("remote_addr", c.remoteAddr),
					zap.Error(err),
				)
			}
			return
		}
		logging.LogWebSocketMessage(c.remoteAddr, "received", msgType, data)

		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			c.reply("", err)
			continue
		}
		c.reply(req.ID, exec(req))
	}
}

func (c *client) reply(id string, result error) {
	data, err := encodeResult(id, result)
	if err != nil {
		logging.Error("Failed to encode result", zap.Error(err))
		return
	}
	if !c.enqueue(data) {
		logging.Warn("Client queue full, result dropped", zap.String("remote_addr", c.remoteAddr))
	}
}

// writePump drains the send queue and keeps the connection alive with pings
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
			logging.LogWebSocketMessage(c.remoteAddr, "sent", websocket.TextMessage, data)
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "bridge shutting down"),
				time.Now().Add(writeWait))
			return
		}
	}
}
