package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qiuyun/cipai-meter/internal/apierr"
	"github.com/qiuyun/cipai-meter/internal/cipai"
	"github.com/qiuyun/cipai-meter/internal/meter"
	"github.com/qiuyun/cipai-meter/internal/render"
	"github.com/qiuyun/cipai-meter/internal/rhyme"
	"github.com/qiuyun/cipai-meter/internal/script"
)

// MatchHandler exposes the engine's two matching operations: aligning a
// passage against one named template, and ranking it against the whole
// library.
type MatchHandler struct {
	dict      *rhyme.Dict
	templates []*cipai.Template
}

// NewMatchHandler wraps the dictionary and template library the engine
// matches against.
func NewMatchHandler(dict *rhyme.Dict, templates []*cipai.Template) *MatchHandler {
	return &MatchHandler{dict: dict, templates: templates}
}

type matchRequest struct {
	Text     string `json:"text" binding:"required"`
	Template string `json:"template" binding:"required"`
	Color    bool   `json:"color"`
}

// Match handles POST /match — align text against one named template.
func (h *MatchHandler) Match(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.InvalidRequest(err.Error()))
		return
	}

	tpl := h.findTemplate(req.Template)
	if tpl == nil {
		respondError(c, apierr.NotFound("template "+req.Template))
		return
	}

	result := meter.MatchMeter(h.dict, script.TrimWhitespace(req.Text), tpl)
	respondOK(c, gin.H{
		"score":   result.Score,
		"display": render.DisplayResult(result, req.Color),
	})
}

type rankRequest struct {
	Text  string `json:"text" binding:"required"`
	Limit int    `json:"limit"`
	Color bool   `json:"color"`
}

// Rank handles POST /match/rank — best_match across every loaded
// template, sorted descending by score and truncated to Limit (default:
// all).
func (h *MatchHandler) Rank(c *gin.Context) {
	var req rankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.InvalidRequest(err.Error()))
		return
	}

	matches := meter.BestMatch(h.dict, h.templates, script.TrimWhitespace(req.Text))
	if req.Limit > 0 && req.Limit < len(matches) {
		matches = matches[:req.Limit]
	}

	data := make([]gin.H, len(matches))
	for i, m := range matches {
		data[i] = gin.H{
			"template": m.Template.Name(),
			"score":    m.Result.Score,
			"display":  render.DisplayResult(m.Result, req.Color),
		}
	}
	respondOK(c, data)
}

func (h *MatchHandler) findTemplate(name string) *cipai.Template {
	for _, tpl := range h.templates {
		for _, n := range tpl.Names {
			if n == name {
				return tpl
			}
		}
	}
	return nil
}
