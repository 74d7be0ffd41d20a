package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/muse/internal/shared"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	OpenBrowser  bool
}

// NewServerConfig converts the [server] config section.
func NewServerConfig(cfg shared.ServerConfig, open bool) ServerConfig {
	return ServerConfig{
		Addr:         cfg.Addr(),
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
		OpenBrowser:  open,
	}
}

// Server runs an [App] behind an [http.Server].
type Server struct {
	httpServer *http.Server
	config     ServerConfig
	logger     *log.Logger
	listener   net.Listener
}

// NewServer creates a Server for handler.
func NewServer(config ServerConfig, handler http.Handler, logger *log.Logger) *Server {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Server{
		config: config,
		logger: shared.WithLogger(logger, "component", "http"),
		httpServer: &http.Server{
			Addr:              config.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       config.ReadTimeout,
			WriteTimeout:      config.WriteTimeout,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Listen binds the configured address. Start calls it when needed.
func (s *Server) Listen() error {
	if s.listener != nil {
		return nil
	}
	l, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	s.listener = l
	return nil
}

// URL returns the base URL of the bound listener.
func (s *Server) URL() string {
	if s.listener == nil {
		return "http://" + s.config.Addr
	}
	return "http://" + s.listener.Addr().String()
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}

	if s.config.OpenBrowser {
		go func() {
			time.Sleep(100 * time.Millisecond)
			if err := shared.OpenBrowser(s.URL()); err != nil {
				s.logger.Warn("failed to open browser", "error", err, "url", s.URL())
			}
		}()
	}

	s.logger.Info("web server starting", "url", s.URL())

	errs := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully shuts down the web server.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s.logger.Info("shutting down web server")
	return s.httpServer.Shutdown(shutdownCtx)
}
