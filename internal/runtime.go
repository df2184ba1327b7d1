package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrymomot/tinyweb/pkg/logger"
)

// server runs an http.Server with startup and shutdown hooks.
type server struct {
	http *http.Server
	cfg  *runConfig
	log  *slog.Logger
}

func newServer(addr string, handler http.Handler, cfg *runConfig) *server {
	if addr == "" {
		addr = ":8080"
	}
	log := cfg.logger
	if log == nil {
		log = logger.NewNope()
	}
	return &server{
		http: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadTimeout:       defaultReadTimeout,
			WriteTimeout:      defaultWriteTimeout,
			IdleTimeout:       defaultIdleTimeout,
			ReadHeaderTimeout: defaultReadHeaderTimeout,
			MaxHeaderBytes:    defaultMaxHeaderBytes,
			ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelWarn),
		},
		cfg: cfg,
		log: log,
	}
}

// run serves until the base context is cancelled, SIGINT or SIGTERM arrives,
// or the listener fails. Shutdown hooks run after the server stopped
// accepting requests, in registration order.
func (s *server) run() error {
	base := s.cfg.baseCtx
	if base == nil {
		base = context.Background()
	}
	ctx, stop := signal.NotifyContext(base, os.Interrupt, syscall.SIGTERM)
	defer stop()

	for i, hook := range s.cfg.startupHooks {
		if err := hook(ctx); err != nil {
			if s.cfg.listener != nil {
				_ = s.cfg.listener.Close()
			}
			return fmt.Errorf("startup hook %d: %w", i, err)
		}
	}

	ln := s.cfg.listener
	if ln == nil {
		var err error
		if ln, err = net.Listen("tcp", s.http.Addr); err != nil {
			return err
		}
	}

	serveErr := make(chan error, 1)
	go func() {
		s.log.Info("server starting", slog.String("address", ln.Addr().String()))
		err := s.http.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		serveErr <- err
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	return s.shutdown()
}

func (s *server) shutdown() error {
	s.log.Info("shutting down server")
	started := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.shutdownTimeout)
	defer cancel()

	var errs []error
	if err := s.http.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	for i, hook := range s.cfg.shutdownHooks {
		if err := hook(ctx); err != nil {
			s.log.Error("shutdown hook failed", slog.Int("hook", i), slog.Any("error", err))
			errs = append(errs, fmt.Errorf("shutdown hook %d: %w", i, err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		s.log.Error("shutdown completed with errors", slog.Duration("took", time.Since(started)))
		return err
	}
	s.log.Info("shutdown completed", slog.Duration("took", time.Since(started)))
	return nil
}
