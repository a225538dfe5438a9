// Package server exposes the renderer and the intake form engine over HTTP.
// It plays the role of the page container: it owns nothing beyond a request
// and hands records to the renderer or form engine unchanged.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"bizdocs/internal/forms"
	"bizdocs/internal/logger"
	"bizdocs/internal/render"
	"bizdocs/pkg/models"
)

const shutdownTimeout = 10 * time.Second

// Options wires the server to its collaborators.
type Options struct {
	Renderer render.Renderer
	Catalog  *forms.Catalog

	// CompanySettings is used when a render request carries none.
	CompanySettings *models.CompanySettings

	// AllowedOrigins enables CORS for browser previews. Empty disables CORS.
	AllowedOrigins []string
}

// Server is the preview and form API.
type Server struct {
	engine   *gin.Engine
	renderer render.Renderer
	catalog  *forms.Catalog
	settings *models.CompanySettings
	log      zerolog.Logger
}

// New builds the gin engine and registers all routes.
func New(opts Options) (*Server, error) {
	if opts.Renderer == nil || opts.Catalog == nil {
		return nil, errors.New("server: renderer and form catalog are required")
	}

	s := &Server{
		engine:   gin.New(),
		renderer: opts.Renderer,
		catalog:  opts.Catalog,
		settings: opts.CompanySettings,
		log:      logger.WithComponent("server"),
	}

	s.engine.Use(requestID(), accessLog(s.log), gin.CustomRecovery(s.recover))
	if len(opts.AllowedOrigins) > 0 {
		corsConfig := cors.Config{
			AllowOrigins:  opts.AllowedOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Content-Type", requestIDHeader},
			ExposeHeaders: []string{"Content-Length", requestIDHeader},
			MaxAge:        12 * time.Hour,
		}
		if err := corsConfig.Validate(); err != nil {
			return nil, fmt.Errorf("server: invalid CORS configuration: %w", err)
		}
		s.engine.Use(cors.New(corsConfig))
	}

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.health)

	api := s.engine.Group("/api")
	{
		api.GET("/templates", s.listTemplates)
		api.POST("/documents/:templateId/render", s.renderDocument)

		formRoutes := api.Group("/forms")
		{
			formRoutes.GET("", s.listForms)
			formRoutes.GET("/:id", s.getForm)
			formRoutes.POST("/:id/validate", s.validateForm)
			formRoutes.POST("/:id/edits", s.applyEdits)
		}
	}
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	const op = "Run"

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info().Msg("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("%s: shutdown: %w", op, err)
	}
	return nil
}
