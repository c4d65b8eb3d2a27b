// Package relay is a small in-memory websocket relay for local development.
// It speaks the same envelope as the client: register frames join the
// roster, message frames are rebroadcast with the sender attached, and the
// roster is pushed to everyone whenever it changes.
package relay

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/zhubert/huddle/internal/logger"
)

// Drop reasons reported on the dropped frames counter.
const (
	reasonRateLimited  = "rate_limited"
	reasonMalformed    = "malformed"
	reasonUnknownType  = "unknown_type"
	reasonUnregistered = "unregistered"
	reasonSlowConsumer = "slow_consumer"
)

// Config tunes a relay Server.
type Config struct {
	// RatePerSecond and Burst bound how fast one connection may send frames.
	RatePerSecond float64
	Burst         int
	// SendBuffer is the per-connection outbound queue size.
	SendBuffer int
}

// DefaultConfig returns the settings used by `huddle relay`.
func DefaultConfig() Config {
	return Config{RatePerSecond: 5, Burst: 10, SendBuffer: 64}
}

// Metrics are the relay's Prometheus collectors.
type Metrics struct {
	connected prometheus.Gauge
	relayed   prometheus.Counter
	dropped   *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		connected: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "huddle",
			Subsystem: "relay",
			Name:      "connected_clients",
			Help:      "Number of open websocket connections.",
		}),
		relayed: f.NewCounter(prometheus.CounterOpts{
			Namespace: "huddle",
			Subsystem: "relay",
			Name:      "frames_relayed_total",
			Help:      "Frames queued for delivery to clients.",
		}),
		dropped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "huddle",
			Subsystem: "relay",
			Name:      "frames_dropped_total",
			Help:      "Frames discarded by the relay, by reason.",
		}, []string{"reason"}),
	}
}

// Server is the relay's HTTP surface and hub.
type Server struct {
	cfg      Config
	hub      *Hub
	registry *prometheus.Registry
	metrics  *Metrics
	upgrader websocket.Upgrader
}

// New builds a relay. ListenAndServe runs the hub; callers mounting Handler
// elsewhere must run Hub().Run themselves.
func New(cfg Config) *Server {
	def := DefaultConfig()
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = def.RatePerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = def.Burst
	}
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = def.SendBuffer
	}

	reg := prometheus.NewRegistry()
	m := newMetrics(reg)

	return &Server{
		cfg:      cfg,
		hub:      newHub(m, logger.WithComponent("relay")),
		registry: reg,
		metrics:  m,
		upgrader: websocket.Upgrader{
			CheckOrigin:      func(*http.Request) bool { return true },
			ReadBufferSize:   1024,
			WriteBufferSize:  1024,
			HandshakeTimeout: 10 * time.Second,
		},
	}
}

// Hub returns the server's hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Registry exposes the metrics registry served on /metrics.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Handler returns the relay router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/ws", s.handleWS)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	log := logger.WithComponent("relay")

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug("upgrade failed", "error", err)
		return
	}

	c := &client{
		id:      uuid.NewString(),
		conn:    conn,
		send:    make(chan []byte, s.cfg.SendBuffer),
		limiter: rate.NewLimiter(rate.Limit(s.cfg.RatePerSecond), s.cfg.Burst),
	}

	select {
	case s.hub.register <- c:
	case <-s.hub.done:
		_ = conn.Close()
		return
	}

	go c.writePump()
	c.readPump(s.hub, log)
}

// ListenAndServe runs the hub and serves addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	log := logger.WithComponent("relay")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.hub.Run(ctx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("relay listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		log.Info("relay shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
