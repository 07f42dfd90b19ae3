package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qiuyun/cipai-meter/internal/store"
)

// HealthHandler handles health check requests by pinging the cache
// database. The engine itself holds no connections to check.
func HealthHandler(db *store.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB.DB()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "failed to get database connection"})
			return
		}

		if err := sqlDB.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database connection failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}

// StatsHandler reports the size of the loaded rhyme dictionary and
// template library.
func StatsHandler(templateCount, rhymeRecordCount int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"templates":     templateCount,
			"rhyme_records": rhymeRecordCount,
		})
	}
}
