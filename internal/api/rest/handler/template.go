package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qiuyun/cipai-meter/internal/apierr"
	"github.com/qiuyun/cipai-meter/internal/cipai"
	"github.com/qiuyun/cipai-meter/internal/render"
)

// TemplateHandler serves the template library: listing, lookup by name,
// and a human-readable display rendering of a named template.
type TemplateHandler struct {
	templates []*cipai.Template
}

// NewTemplateHandler wraps the loaded template library.
func NewTemplateHandler(templates []*cipai.Template) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// List handles GET /templates — a paginated listing of every loaded
// template's canonical name and variant.
func (h *TemplateHandler) List(c *gin.Context) {
	params := ParsePagination(c)

	start := params.Offset()
	if start > len(h.templates) {
		start = len(h.templates)
	}
	end := start + params.PageSize
	if end > len(h.templates) {
		end = len(h.templates)
	}

	page := h.templates[start:end]
	data := make([]gin.H, len(page))
	for i, tpl := range page {
		data[i] = gin.H{"name": tpl.Name(), "names": tpl.Names, "variant": tpl.Variant}
	}

	c.JSON(200, NewPaginationResponse(data, params, int64(len(h.templates))))
}

// Get handles GET /templates/:name — the plain-text display of every
// variant matching name, or a not-found error if none match.
func (h *TemplateHandler) Get(c *gin.Context) {
	name := c.Param("name")
	matches := h.findByName(name)
	if len(matches) == 0 {
		respondError(c, apierr.NotFound("template "+name))
		return
	}

	colorize := c.Query("color") == "1"
	data := make([]gin.H, len(matches))
	for i, tpl := range matches {
		data[i] = gin.H{
			"names":       tpl.Names,
			"variant":     tpl.Variant,
			"description": tpl.Description,
			"display":     render.DisplayTemplate(tpl, colorize),
		}
	}
	respondOK(c, data)
}

func (h *TemplateHandler) findByName(name string) []*cipai.Template {
	var matches []*cipai.Template
	for _, tpl := range h.templates {
		for _, n := range tpl.Names {
			if n == name {
				matches = append(matches, tpl)
				break
			}
		}
	}
	return matches
}
