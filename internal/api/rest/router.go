// Package rest wires the rhyme dictionary, template library, and
// alignment engine onto an HTTP surface.
package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/qiuyun/cipai-meter/internal/api/middleware"
	"github.com/qiuyun/cipai-meter/internal/api/rest/handler"
	"github.com/qiuyun/cipai-meter/internal/cipai"
	"github.com/qiuyun/cipai-meter/internal/config"
	"github.com/qiuyun/cipai-meter/internal/rhyme"
	"github.com/qiuyun/cipai-meter/internal/store"
)

// SetupRouter sets up the Gin router with all routes.
func SetupRouter(cfg *config.Config, db *store.DB, dict *rhyme.Dict, templates []*cipai.Template) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	if cfg.RateLimit.Enabled {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		router.Use(rateLimiter.Middleware())
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handler.HealthHandler(db))
		v1.GET("/stats", handler.StatsHandler(len(templates), dict.RecordCount()))

		rhymeHandler := handler.NewRhymeHandler(dict)
		v1.GET("/rhymes/:char", rhymeHandler.RhymesOf)
		v1.GET("/rhymes/:id/chars", rhymeHandler.CharsOf)

		templateHandler := handler.NewTemplateHandler(templates)
		v1.GET("/templates", templateHandler.List)
		v1.GET("/templates/:name", templateHandler.Get)

		matchHandler := handler.NewMatchHandler(dict, templates)
		v1.POST("/match", matchHandler.Match)
		v1.POST("/match/rank", matchHandler.Rank)
	}

	return router
}
