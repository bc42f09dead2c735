package server

import (
	"context"
	"net"
	"sync/atomic"
	"time"

	"minihttp/internal/request"
	"minihttp/internal/response"
)

// Handler produces the response for one parsed request.
type Handler func(w *response.Writer, r *request.Request)

// Config is fixed before Serve starts and shared read-only by every
// connection goroutine.
type Config struct {
	Addr        string
	ReadTimeout time.Duration
	Logger      Logger
	Metrics     *Metrics
}

// DefaultConfig returns the standard listen address and timeouts.
func DefaultConfig() Config {
	return Config{
		Addr:        "127.0.0.1:4221",
		ReadTimeout: 30 * time.Second,
	}
}

// Server accepts connections and runs each through the
// read -> parse -> route -> respond pipeline on its own goroutine.
// Concurrency is unbounded; connections never affect one another.
type Server struct {
	cfg     Config
	handler Handler
	closed  atomic.Bool
}

func New(cfg Config, handler Handler) *Server {
	if cfg.Logger == nil {
		cfg.Logger = &NullLogger{}
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NewMetrics()
	}
	return &Server{
		cfg:     cfg,
		handler: handler,
	}
}

// Stats returns a snapshot of the server's metrics.
func (s *Server) Stats() MetricsSnapshot {
	return s.cfg.Metrics.Snapshot()
}

// Serve listens on cfg.Addr and accepts until ctx is cancelled. Each
// accepted connection is handed to its own goroutine immediately so a slow
// client never blocks the accept loop. On cancellation the listener is
// closed and Serve returns ctx.Err() without waiting for in-flight
// connections.
func (s *Server) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.ServeListener(ctx, listener)
}

// ServeListener runs the accept loop on an already bound listener.
func (s *Server) ServeListener(ctx context.Context, listener net.Listener) error {
	s.cfg.Logger.Info("listening", Field{Key: "addr", Value: listener.Addr().String()})

	// Unblocks Accept when the shutdown signal fires.
	go func() {
		<-ctx.Done()
		s.closed.Store(true)
		listener.Close()
	}()

	for {
		// Shutdown wins over a simultaneously ready accept.
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		conn, err := listener.Accept()
		if err != nil {
			if s.closed.Load() {
				return ctx.Err()
			}
			s.cfg.Logger.Error("accept failed", Field{Key: "error", Value: err})
			continue
		}

		go s.serveConn(conn)
	}
}
