package bootstrap

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Server runs the API until its context ends, then drains in-flight requests.
type Server struct {
	http     *http.Server
	drainFor time.Duration
	events   EventLogger
	logger   *zap.Logger
}

func NewServer(handler http.Handler, cfg ServerConfig, events EventLogger, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.L()
	}
	drain := cfg.ShutdownTimeout
	if drain <= 0 {
		drain = 10 * time.Second
	}
	return &Server{
		http: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		drainFor: drain,
		events:   events,
		logger:   logger.Named("http"),
	}
}

// Run blocks until ctx is canceled or the listener fails. A clean drain
// returns nil.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return err
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	served := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", ln.Addr().String()))
		served <- s.http.Serve(ln)
	}()

	select {
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	cause := context.Cause(ctx)
	s.logger.Info("draining", zap.Duration("timeout", s.drainFor), zap.NamedError("cause", cause))
	if s.events != nil {
		s.events.Log(context.WithoutCancel(ctx), EventLog{
			Action:  "SERVER_SHUTDOWN",
			Message: "API stopped accepting requests",
			Meta:    map[string]any{"cause": cause.Error(), "drain_timeout": s.drainFor.String()},
		})
	}

	drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.drainFor)
	defer cancel()
	if err := s.http.Shutdown(drainCtx); err != nil {
		s.logger.Error("forced shutdown", zap.Error(err))
		return err
	}
	s.logger.Info("stopped")
	return nil
}
