package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"bizdocs/internal/logger"
	"bizdocs/internal/render"
	"bizdocs/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the document preview and intake form API",
	Long: `Serve the HTTP API:

  GET  /healthz
  GET  /api/templates?kind=
  POST /api/documents/:templateId/render
  GET  /api/forms
  GET  /api/forms/:id
  POST /api/forms/:id/validate
  POST /api/forms/:id/edits

Environment variables:
  HTTP_ADDR              - Listen address (default: :8080)
  GIN_MODE               - debug, release or test (default: release)
  COMPANY_SETTINGS_FILE  - Company settings used when a request carries none
  CORS_ALLOWED_ORIGINS   - Comma separated origins allowed for browser previews`,
	Example: `  bizdocs serve
  bizdocs serve --addr 127.0.0.1:9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (default: HTTP_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	addr, _ := cmd.Flags().GetString("addr")
	if strings.TrimSpace(addr) == "" {
		addr = cfg.HTTPAddr
	}

	gin.SetMode(cfg.GinMode)

	settings, err := cfg.LoadCompanySettings()
	if err != nil {
		log.Error().Err(err).Str("file", cfg.CompanySettingsFile).Msg("Failed to load company settings")
		return fmt.Errorf("failed to load company settings: %w", err)
	}

	renderer, err := render.NewHTMLRenderer(cfg.GetRenderConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}
	catalog, err := loadFormCatalog(log)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Options{
		Renderer:        renderer,
		Catalog:         catalog,
		CompanySettings: settings,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("addr", addr).
		Bool("company_settings", settings != nil).
		Bool("trust_markup", cfg.TrustDocumentMarkup).
		Int("forms", len(catalog.List())).
		Msg("Starting preview server")

	if err := srv.Run(ctx, addr); err != nil {
		log.Error().Err(err).Msg("Preview server failed")
		return err
	}

	log.Info().Msg("Preview server stopped")
	return nil
}
