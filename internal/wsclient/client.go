// Package wsclient is the client side of the chat websocket. A Client owns one
// connection, a reader goroutine that forwards text frames to Inbound and a
// writer goroutine that drains the outbound queue filled by TrySend.
package wsclient

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zhubert/huddle/internal/errors"
	"github.com/zhubert/huddle/internal/logger"
)

const (
	// DefaultBufferSize is the capacity of both the outbound and inbound queues.
	DefaultBufferSize = 64

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Client is a connected chat websocket.
type Client struct {
	conn *websocket.Conn
	url  string
	log  *slog.Logger

	tx      chan string
	inbound chan string
	done    chan struct{}

	closeOnce sync.Once
	wg        sync.WaitGroup
}

// Option configures Dial.
type Option func(*options)

type options struct {
	bufferSize int
	dialer     *websocket.Dialer
}

// WithBufferSize sets the outbound and inbound queue capacity.
func WithBufferSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.bufferSize = n
		}
	}
}

// WithDialer overrides the gorilla dialer, mainly for tests.
func WithDialer(d *websocket.Dialer) Option {
	return func(o *options) { o.dialer = d }
}

// Dial connects to url and starts the reader and writer goroutines.
func Dial(ctx context.Context, url string, opts ...Option) (*Client, error) {
	o := options{bufferSize: DefaultBufferSize, dialer: websocket.DefaultDialer}
	for _, opt := range opts {
		opt(&o)
	}

	log := logger.WithComponent("wsclient").With("url", url)
	log.Debug("dialing")

	conn, _, err := o.dialer.DialContext(ctx, url, nil)
	if err != nil {
		log.Warn("dial failed", "error", err)
		if timedOut(ctx) {
			return nil, errors.DialTimedOut(url, err)
		}
		return nil, errors.DialFailed(url, err)
	}

	c := &Client{
		conn:    conn,
		url:     url,
		log:     log,
		tx:      make(chan string, o.bufferSize),
		inbound: make(chan string, o.bufferSize),
		done:    make(chan struct{}),
	}

	c.wg.Add(2)
	go c.readLoop()
	go c.writeLoop()

	log.Info("connected")
	return c, nil
}

// timedOut reports whether ctx has run out of time. The handshake deadline
// can fire a moment before ctx itself is marked done.
func timedOut(ctx context.Context) bool {
	if ctx.Err() == context.DeadlineExceeded {
		return true
	}
	deadline, ok := ctx.Deadline()
	return ok && !time.Now().Before(deadline)
}

// URL returns the address the client dialed.
func (c *Client) URL() string {
	return c.url
}

// Inbound delivers every text frame the server sends. It is closed when the
// connection ends.
func (c *Client) Inbound() <-chan string {
	return c.inbound
}

// Done is closed once the client starts shutting down.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// TrySend queues a frame for the writer without blocking. It fails when the
// queue is full or the client is closed; the frame is not retried.
func (c *Client) TrySend(frame string) error {
	select {
	case <-c.done:
		return errors.ClientClosed()
	default:
	}

	select {
	case c.tx <- frame:
		return nil
	default:
		return errors.SendBufferFull()
	}
}

// Close stops both goroutines and closes the connection. It is safe to call
// more than once.
func (c *Client) Close() error {
	c.shutdown()
	c.wg.Wait()
	return nil
}

func (c *Client) shutdown() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

func (c *Client) readLoop() {
	defer c.wg.Done()
	defer close(c.inbound)
	defer c.shutdown()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		mt, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Warn("read failed", "error", err)
			} else {
				c.log.Debug("reader stopped", "error", err)
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}

		select {
		case c.inbound <- string(data):
		case <-c.done:
			return
		}
	}
}

func (c *Client) writeLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame := <-c.tx:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				c.log.Warn("write failed", "error", err)
				c.shutdown()
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.Debug("ping failed", "error", err)
				c.shutdown()
				return
			}

		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			c.log.Debug("writer stopped")
			return
		}
	}
}
