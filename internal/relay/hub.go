package relay

import (
	"context"
	"log/slog"

	"github.com/zhubert/huddle/internal/protocol"
)

// frame is one decoded envelope read from a connection.
type frame struct {
	from *client
	env  protocol.Envelope
}

// Hub owns the set of connected clients and the roster. All state is
// confined to the Run goroutine; connections talk to it over channels.
type Hub struct {
	register   chan *client
	unregister chan *client
	frames     chan frame
	done       chan struct{}

	clients map[*client]struct{}
	// roster holds registered clients in registration order.
	roster []*client

	metrics *Metrics
	log     *slog.Logger
}

func newHub(m *Metrics, log *slog.Logger) *Hub {
	return &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		frames:     make(chan frame),
		done:       make(chan struct{}),
		clients:    make(map[*client]struct{}),
		metrics:    m,
		log:        log,
	}
}

// Run processes hub events until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		for c := range h.clients {
			close(c.send)
		}
		h.clients = nil
		h.roster = nil
	}()

	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.metrics.connected.Inc()
			h.log.Debug("client connected", "conn", c.id)

		case c := <-h.unregister:
			if _, ok := h.clients[c]; !ok {
				continue
			}
			delete(h.clients, c)
			close(c.send)
			h.metrics.connected.Dec()
			h.log.Debug("client disconnected", "conn", c.id, "user", c.name)
			if h.removeFromRoster(c) {
				h.broadcastRoster()
			}

		case f := <-h.frames:
			h.handle(f)

		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) handle(f frame) {
	switch f.env.MessageType {
	case protocol.MsgRegister:
		name := f.env.DataString()
		if name == "" {
			h.metrics.dropped.WithLabelValues(reasonMalformed).Inc()
			return
		}
		if f.from.name == "" {
			h.roster = append(h.roster, f.from)
		}
		f.from.name = name
		h.log.Info("user registered", "conn", f.from.id, "user", name)
		h.broadcastRoster()

	case protocol.MsgMessage:
		if f.from.name == "" {
			h.metrics.dropped.WithLabelValues(reasonUnregistered).Inc()
			return
		}
		env, err := protocol.NewMessageFrame(f.from.name, f.env.DataString())
		if err != nil {
			h.log.Error("failed to build message frame", "error", err)
			return
		}
		h.broadcast(env)

	default:
		h.log.Debug("ignoring frame", "conn", f.from.id, "messageType", string(f.env.MessageType))
	}
}

// rosterNames returns the registered names in registration order.
func (h *Hub) rosterNames() []string {
	names := make([]string, 0, len(h.roster))
	for _, c := range h.roster {
		names = append(names, c.name)
	}
	return names
}

func (h *Hub) removeFromRoster(c *client) bool {
	for i, r := range h.roster {
		if r == c {
			h.roster = append(h.roster[:i], h.roster[i+1:]...)
			return true
		}
	}
	return false
}

func (h *Hub) broadcastRoster() {
	h.broadcast(protocol.NewUsers(h.rosterNames()))
}

// broadcast queues env for every client. env comes from the protocol
// constructors, which always encode.
func (h *Hub) broadcast(env protocol.Envelope) {
	msg := []byte(protocol.MustEncode(env))
	for c := range h.clients {
		select {
		case c.send <- msg:
			h.metrics.relayed.Inc()
		default:
			h.metrics.dropped.WithLabelValues(reasonSlowConsumer).Inc()
			h.log.Warn("send queue full, dropping frame", "conn", c.id)
		}
	}
}
