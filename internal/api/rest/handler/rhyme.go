package handler

import (
	"strconv"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/qiuyun/cipai-meter/internal/apierr"
	"github.com/qiuyun/cipai-meter/internal/rhyme"
)

// RhymeHandler serves the dictionary queries: the rhyme records a
// character belongs to, and the characters a rhyme record covers.
type RhymeHandler struct {
	dict *rhyme.Dict
}

// NewRhymeHandler wraps dict for the REST surface.
func NewRhymeHandler(dict *rhyme.Dict) *RhymeHandler {
	return &RhymeHandler{dict: dict}
}

// RhymesOf handles GET /rhymes/:char — the records a character belongs
// to. An unknown character is not an error: it returns an empty list.
func (h *RhymeHandler) RhymesOf(c *gin.Context) {
	char := c.Param("char")
	r, size := utf8.DecodeRuneInString(char)
	if r == utf8.RuneError || size != len(char) {
		respondError(c, apierr.InvalidRequest("char must be exactly one character"))
		return
	}

	records := h.dict.RhymesOf(r)
	data := make([]gin.H, len(records))
	for i, rec := range records {
		data[i] = gin.H{
			"id":    rec.ID,
			"name":  rec.Name,
			"group": rec.Group,
			"tone":  rec.Tone.String(),
		}
	}
	respondOK(c, data)
}

// CharsOf handles GET /rhymes/:id/chars — the characters belonging to a
// rhyme record ID.
func (h *RhymeHandler) CharsOf(c *gin.Context) {
	idStr := c.Param("id")
	n, err := strconv.Atoi(idStr)
	if err != nil || n < 0 {
		respondError(c, apierr.InvalidRequest("id must be a non-negative integer"))
		return
	}

	chars := h.dict.CharsOf(rhyme.ID(n))
	out := make([]string, len(chars))
	for i, r := range chars {
		out[i] = string(r)
	}
	respondOK(c, out)
}
