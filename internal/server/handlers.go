package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bizdocs/internal/forms"
	"bizdocs/internal/logger"
	"bizdocs/internal/registry"
	"bizdocs/internal/render"
	"bizdocs/pkg/models"
)

// RenderRequest is the body of POST /api/documents/:templateId/render.
type RenderRequest struct {
	Data            *models.DocumentData           `json:"data" binding:"required"`
	CompanySettings *models.CompanySettings        `json:"companySettings"`
	Customizations  *models.TemplateCustomizations `json:"customizations"`
}

// ValidationResponse reports the validity flag of a form record.
type ValidationResponse struct {
	IsValid bool     `json:"isValid"`
	Missing []string `json:"missing"`
}

// EditsRequest is the body of POST /api/forms/:id/edits.
type EditsRequest struct {
	Data  forms.Record `json:"data"`
	Edits []forms.Edit `json:"edits" binding:"required"`
}

// EditsResponse is the record after all edits and its validity.
type EditsResponse struct {
	Data    forms.Record `json:"data"`
	IsValid bool         `json:"isValid"`
}

// FormSummary is one entry of GET /api/forms.
type FormSummary struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Required []string `json:"required"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// listTemplates returns the registry, optionally filtered by ?kind=.
func (s *Server) listTemplates(c *gin.Context) {
	raw := c.Query("kind")
	if raw == "" {
		c.JSON(http.StatusOK, registry.All())
		return
	}
	kind, err := models.ParseKind(raw)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid_kind", err.Error())
		return
	}
	c.JSON(http.StatusOK, registry.ByKind(kind))
}

func (s *Server) renderDocument(c *gin.Context) {
	var body RenderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	settings := body.CompanySettings
	if settings == nil {
		settings = s.settings
	}

	html, err := s.renderer.RenderHTML(render.Request{
		TemplateID:      c.Param("templateId"),
		Data:            body.Data,
		CompanySettings: settings,
		Customizations:  body.Customizations,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	logger.FromContext(c.Request.Context()).Debug().
		Str("template", c.Param("templateId")).
		Str("document_number", body.Data.DocumentNumber).
		Msg("Document preview rendered")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) listForms(c *gin.Context) {
	defs := s.catalog.List()
	out := make([]FormSummary, 0, len(defs))
	for _, d := range defs {
		out = append(out, FormSummary{ID: d.ID, Name: d.Name, Category: d.Category, Required: d.Required})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getForm(c *gin.Context) {
	def, err := s.catalog.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, def)
}

func (s *Server) validateForm(c *gin.Context) {
	def, err := s.catalog.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var rec forms.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		respondBindError(c, err)
		return
	}
	if err := def.CheckRecord(rec); err != nil {
		respondError(c, err)
		return
	}

	missing := def.Missing(rec)
	if missing == nil {
		missing = []string{}
	}
	c.JSON(http.StatusOK, ValidationResponse{IsValid: len(missing) == 0, Missing: missing})
}

// applyEdits replays the edits over the supplied record, or over a fresh record when none is given.
func (s *Server) applyEdits(c *gin.Context) {
	def, err := s.catalog.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var body EditsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	if body.Data != nil {
		if err := def.CheckRecord(body.Data); err != nil {
			respondError(c, err)
			return
		}
	}

	rec, valid, err := def.Replay(body.Data, body.Edits)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, EditsResponse{Data: rec, IsValid: valid})
}
