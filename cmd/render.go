package cmd

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"bizdocs/internal/config"
	"bizdocs/internal/logger"
	"bizdocs/internal/registry"
	"bizdocs/internal/render"
	"bizdocs/pkg/models"
)

var renderCmd = &cobra.Command{
	Use:   "render [document.json]",
	Short: "Render an invoice, quote or delivery note to HTML",
	Long: `Render a document record (JSON) with one of the registered templates.

The record uses the camelCase fields of the document data shape
(documentNumber, date, customerName, customerAddress, items, subtotal,
taxRate, taxAmount, total, ...). customerAddress may be a preformatted
string or an object with street, zipCode, city and country.

Company details for header and footer are read from --company, or from
the file named by COMPANY_SETTINGS_FILE.

Environment variables:
  COMPANY_SETTINGS_FILE  - Default company settings JSON
  DEFAULT_CURRENCY       - Currency when the record has none (default: EUR)
  TRUST_DOCUMENT_MARKUP  - Inject headTextHtml/footerText unescaped (default: true)`,
	Example: `  # Render with an explicit template
  bizdocs render rechnung.json --template corporate-invoice -o rechnung.html

  # Use the default template of a family
  bizdocs render angebot.json --kind quote

  # Override the logo or hide it
  bizdocs render rechnung.json --template tech-invoice --logo https://example.de/logo.png
  bizdocs render lieferschein.json --kind delivery-note --hide-logo`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringP("template", "t", "", "Template ID (see 'bizdocs templates')")
	renderCmd.Flags().StringP("kind", "k", "", "Document family when no template is given (invoice, quote, delivery-note)")
	renderCmd.Flags().String("company", "", "Company settings JSON file (default: COMPANY_SETTINGS_FILE)")
	renderCmd.Flags().String("logo", "", "Logo URL overriding company settings and record")
	renderCmd.Flags().Bool("hide-logo", false, "Render without logo")
	renderCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
}

func runRender(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("render-cmd")

	templateID, _ := cmd.Flags().GetString("template")
	kindFlag, _ := cmd.Flags().GetString("kind")
	companyPath, _ := cmd.Flags().GetString("company")
	logoURL, _ := cmd.Flags().GetString("logo")
	hideLogo, _ := cmd.Flags().GetBool("hide-logo")
	outputPath, _ := cmd.Flags().GetString("output")

	docPath := args[0]

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	templateID, err = resolveTemplateID(templateID, kindFlag)
	if err != nil {
		return err
	}

	log.Info().
		Str("file", docPath).
		Str("template", templateID).
		Str("output", outputPath).
		Msg("Rendering document")

	var data models.DocumentData
	if err := readJSONFile(docPath, &data, log); err != nil {
		return err
	}

	settings, err := loadCompanySettings(cfg, companyPath, log)
	if err != nil {
		return err
	}

	var custom *models.TemplateCustomizations
	if logoURL != "" || hideLogo {
		custom = &models.TemplateCustomizations{LogoURL: logoURL}
		if hideLogo {
			show := false
			custom.ShowLogo = &show
		}
	}

	renderer, err := render.NewHTMLRenderer(cfg.GetRenderConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}

	html, err := renderer.RenderHTML(render.Request{
		TemplateID:      templateID,
		Data:            &data,
		CompanySettings: settings,
		Customizations:  custom,
	})
	if err != nil {
		return handleRenderError(err, templateID, log)
	}

	log.Info().
		Str("document_number", data.DocumentNumber).
		Str("template", templateID).
		Int("bytes", len(html)).
		Msg("Document rendered successfully")

	return writeOutput([]byte(html), outputPath, log)
}

// resolveTemplateID picks the explicit template, or the default template of the given family.
func resolveTemplateID(templateID, kindFlag string) (string, error) {
	if templateID != "" {
		return templateID, nil
	}
	if kindFlag == "" {
		return "", fmt.Errorf("either --template or --kind is required")
	}
	kind, err := models.ParseKind(kindFlag)
	if err != nil {
		return "", err
	}
	entry, ok := registry.Default(kind)
	if !ok {
		return "", fmt.Errorf("no template registered for %s", kind)
	}
	return entry.ID, nil
}

func loadCompanySettings(cfg *config.Config, path string, log zerolog.Logger) (*models.CompanySettings, error) {
	if path == "" {
		settings, err := cfg.LoadCompanySettings()
		if err != nil {
			log.Error().Err(err).Str("file", cfg.CompanySettingsFile).Msg("Failed to load company settings")
			return nil, fmt.Errorf("failed to load company settings from COMPANY_SETTINGS_FILE: %w", err)
		}
		if settings == nil {
			log.Warn().Msg("No company settings given, header and footer stay empty")
		}
		return settings, nil
	}

	settings, err := config.ReadCompanySettings(path)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("Failed to load company settings")
		return nil, fmt.Errorf("failed to load company settings: %w", err)
	}
	return settings, nil
}

// handleRenderError provides user-friendly error messages for rendering failures
func handleRenderError(err error, templateID string, log zerolog.Logger) error {
	log.Error().Err(err).Str("template", templateID).Msg("Document rendering failed")

	switch {
	case errors.Is(err, render.ErrUnknownTemplate):
		return fmt.Errorf("unknown template %q. Run 'bizdocs templates' to list the available templates", templateID)
	case errors.Is(err, render.ErrMissingData):
		return fmt.Errorf("the document file contains no data")
	case errors.Is(err, render.ErrTemplateExecution):
		return fmt.Errorf("template %s could not be rendered: %w", templateID, err)
	default:
		return fmt.Errorf("document rendering failed: %w", err)
	}
}
