package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qiuyun/cipai-meter/internal/cipai"
	"github.com/qiuyun/cipai-meter/internal/rhyme"
	"github.com/qiuyun/cipai-meter/internal/tone"
)

func newMatchTestHandler() *MatchHandler {
	dict := rhyme.Build(
		[]*rhyme.Record{{ID: 0, Name: "一东", Tone: tone.Ping}},
		[][]rune{{'东', '风'}},
	)
	templates := []*cipai.Template{
		{Names: []string{"如梦令"}, Meter: []cipai.Line{{{Type: tone.TypePing}, {Type: tone.TypePing}}}},
	}
	return NewMatchHandler(dict, templates)
}

func TestMatchAgainstNamedTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newMatchTestHandler()

	router := gin.New()
	router.POST("/match", h.Match)

	body, _ := json.Marshal(matchRequest{Text: "东风", Template: "如梦令"})
	req := httptest.NewRequest(http.MethodPost, "/match", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]any)
	assert.InDelta(t, 1.0, data["score"], 1e-9)
}

func TestMatchUnknownTemplateIsNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newMatchTestHandler()

	router := gin.New()
	router.POST("/match", h.Match)

	body, _ := json.Marshal(matchRequest{Text: "东风", Template: "不存在"})
	req := httptest.NewRequest(http.MethodPost, "/match", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRankOrdersDescendingByScore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newMatchTestHandler()

	router := gin.New()
	router.POST("/match/rank", h.Rank)

	body, _ := json.Marshal(rankRequest{Text: "东风"})
	req := httptest.NewRequest(http.MethodPost, "/match/rank", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].([]any)
	require.Len(t, data, 1)
}
