// Package render turns a document record into HTML using one shared template
// parameterized by the skins of the template registry.
//
// Every registry entry renders the same sections in the same order:
// header, parties, metadata, line items, totals, tax notice, signatures and footer.
// Skins only change the arrangement and styling.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"bizdocs/internal/document"
	"bizdocs/internal/logger"
	"bizdocs/internal/registry"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer renders documents by template ID.
type Renderer interface {
	// RenderHTML returns the complete HTML page for the request.
	RenderHTML(req Request) (string, error)

	// Render writes the HTML page for the request to w.
	Render(w io.Writer, req Request) error
}

// Config controls rendering behaviour shared by all templates.
type Config struct {
	// TrustMarkup injects headTextHtml and footerText without escaping.
	// The producer of those fields must sanitize them when this is on.
	TrustMarkup bool

	// DefaultCurrency is used when the record has no currency. Empty means EUR.
	DefaultCurrency string
}

// DefaultConfig matches the behaviour of the legacy templates: markup is trusted, EUR.
func DefaultConfig() Config {
	return Config{
		TrustMarkup:     true,
		DefaultCurrency: document.DefaultCurrency,
	}
}

// HTMLRenderer is the html/template implementation of Renderer. It is safe for concurrent use.
type HTMLRenderer struct {
	tpl  *template.Template
	opts viewOptions
	log  zerolog.Logger
}

// NewHTMLRenderer parses the embedded template.
func NewHTMLRenderer(cfg Config) (*HTMLRenderer, error) {
	const op = "NewHTMLRenderer"

	tpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse document template: %w", op, err)
	}

	cur := strings.ToUpper(strings.TrimSpace(cfg.DefaultCurrency))
	if cur == "" {
		cur = document.DefaultCurrency
	}

	return &HTMLRenderer{
		tpl: tpl,
		opts: viewOptions{
			trustMarkup:     cfg.TrustMarkup,
			defaultCurrency: cur,
		},
		log: logger.WithComponent("render"),
	}, nil
}

// View resolves the template entry and skin and builds the view model without executing HTML.
func (r *HTMLRenderer) View(req Request) (View, error) {
	const op = "View"

	if req.Data == nil {
		return View{}, newRenderError(op, req.TemplateID, ErrMissingData)
	}
	entry, ok := registry.Lookup(req.TemplateID)
	if !ok {
		return View{}, newRenderError(op, req.TemplateID, ErrUnknownTemplate)
	}
	skin, ok := SkinByName(entry.Skin)
	if !ok {
		return View{}, newRenderError(op, req.TemplateID, fmt.Errorf("%w: %s", ErrUnknownSkin, entry.Skin))
	}
	return buildView(entry, skin, req, r.opts), nil
}

// Render implements Renderer.
func (r *HTMLRenderer) Render(w io.Writer, req Request) error {
	const op = "Render"

	view, err := r.View(req)
	if err != nil {
		r.log.Warn().
			Err(err).
			Str("template", req.TemplateID).
			Msg("Cannot build document view")
		return err
	}

	if err := r.tpl.ExecuteTemplate(w, "document", view); err != nil {
		r.log.Error().
			Err(err).
			Str("template", req.TemplateID).
			Str("document_number", view.Number).
			Msg("Document template execution failed")
		return newRenderError(op, req.TemplateID, fmt.Errorf("%w: %v", ErrTemplateExecution, err))
	}

	r.log.Debug().
		Str("template", view.TemplateID).
		Str("kind", string(view.Kind)).
		Str("document_number", view.Number).
		Int("items", len(view.Items)).
		Bool("tax_line", view.Totals.ShowTax).
		Bool("logo", view.LogoURL != "").
		Msg("Document rendered")
	return nil
}

// RenderHTML implements Renderer.
func (r *HTMLRenderer) RenderHTML(req Request) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, req); err != nil {
		return "", err
	}
	return buf.String(), nil
}
