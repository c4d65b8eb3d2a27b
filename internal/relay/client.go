package relay

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/zhubert/huddle/internal/protocol"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxFrameSize = 64 * 1024
)

// client is one relay connection. name is owned by the hub goroutine.
type client struct {
	id      string
	conn    *websocket.Conn
	send    chan []byte
	limiter *rate.Limiter
	name    string
}

// readPump decodes frames and hands them to the hub until the connection
// fails. Over-limit, malformed and unknown-tag frames are dropped.
func (c *client) readPump(h *Hub, log *slog.Logger) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxFrameSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("read failed", "conn", c.id, "error", err)
			}
			return
		}

		if !c.limiter.Allow() {
			h.metrics.dropped.WithLabelValues(reasonRateLimited).Inc()
			continue
		}

		env, err := protocol.Decode(string(data))
		if err != nil {
			h.metrics.dropped.WithLabelValues(reasonMalformed).Inc()
			log.Debug("dropping malformed frame", "conn", c.id, "error", err)
			continue
		}
		if !env.MessageType.Known() {
			h.metrics.dropped.WithLabelValues(reasonUnknownType).Inc()
			log.Debug("dropping frame with unknown tag", "conn", c.id, "messageType", string(env.MessageType))
			continue
		}

		select {
		case h.frames <- frame{from: c, env: env}:
		case <-h.done:
			return
		}
	}
}

// writePump drains the send queue. The hub closes send when the client is
// unregistered.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
