package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formfields/pkg/openapi"
	"github.com/goliatone/go-formfields/pkg/project"
	"github.com/goliatone/go-formfields/pkg/renderers/vanilla"
	"github.com/goliatone/go-formfields/pkg/screen"
)

const shutdownTimeout = 5 * time.Second

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and lifecycle logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSubmitter replaces the mock project handler.
func WithSubmitter(submitter project.Submitter) Option {
	return func(s *Server) {
		if submitter != nil {
			s.submitter = submitter
		}
	}
}

// WithKit replaces the HTML kit.
func WithKit(kit *vanilla.Kit) Option {
	return func(s *Server) {
		if kit != nil {
			s.kit = kit
		}
	}
}

// WithTheme applies a resolved theme to every page.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(s *Server) {
		s.theme = cfg
	}
}

// WithCORSOrigins enables CORS for the listed origins.
func WithCORSOrigins(origins ...string) Option {
	return func(s *Server) {
		s.origins = append(s.origins, origins...)
	}
}

// Server serves the form screens, the JSON handler and the OpenAPI document.
type Server struct {
	engine    *gin.Engine
	kit       *vanilla.Kit
	theme     *theme.RendererConfig
	submitter project.Submitter
	origins   []string
	logger    *slog.Logger
	document  []byte
}

// New builds the router.
func New(options ...Option) (*Server, error) {
	s := &Server{
		submitter: project.NewHandler(),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.kit == nil {
		kit, err := vanilla.NewKit(vanilla.WithLogger(s.logger))
		if err != nil {
			return nil, fmt.Errorf("server: build kit: %w", err)
		}
		s.kit = kit
	}
	if s.theme == nil {
		cfg, err := vanilla.DefaultTheme("")
		if err != nil {
			return nil, fmt.Errorf("server: select theme: %w", err)
		}
		s.theme = cfg
	}

	doc := openapi.Document()
	if err := openapi.Validate(context.Background(), doc); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	raw, err := openapi.Encode(doc, false)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	s.document = raw

	s.engine = s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("http server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger(s.logger))
	if len(s.origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: s.origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{"Content-Type", requestIDHeader},
			MaxAge:       12 * time.Hour,
		}))
	}

	r.GET("/", s.landing)
	for _, variant := range screen.Variants() {
		path := "/" + string(variant)
		r.GET(path, s.showScreen(variant))
		r.POST(path, s.postScreen(variant))
	}

	api := r.Group("/api")
	api.POST("/projects", s.createProject)
	api.GET("/openapi.json", s.openAPI)

	r.GET("/healthz", s.health)
	r.StaticFS("/assets", http.FS(vanilla.AssetsFS()))
	return r
}
