package rest

import (
	"context"
	"errors"
	"net/http"

	"keema/internal/application"
)

type Config struct {
	Addr           string   `env:"ADDR" envDefault:":8000"`
	AdminKey       string   `env:"ADMIN_KEY" envDefault:""`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	MaxUploadBytes int64    `env:"MAX_UPLOAD_BYTES" envDefault:"67108864"`
}

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Server struct {
	cfg      Config
	services *application.Service
	health   HealthChecker
	logger   application.Logger
	srv      *http.Server
}

func NewServer(cfg Config, services *application.Service, health HealthChecker, logger application.Logger) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	return &Server{cfg: cfg, services: services, health: health, logger: logger}
}

func (s *Server) Init() error {
	h := &Handler{
		services:       s.services,
		health:         s.health,
		logger:         s.logger,
		maxUploadBytes: s.cfg.MaxUploadBytes,
	}
	s.srv = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           WithCORS(s.cfg.AllowedOrigins)(NewRouter(h, s.cfg.AdminKey)),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return nil
}

func (s *Server) Run(ctx context.Context) {
	s.logger.Info("HTTP API listening on %s", s.cfg.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("HTTP API stopped: %v", err)
	}
}

func (s *Server) Stop() {
	if s.srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP API shutdown: %v", err)
	}
}
