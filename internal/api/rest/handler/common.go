package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qiuyun/cipai-meter/internal/apierr"
)

// respondError writes an apierr.APIError as the response body, using its
// own HTTPStatus.
func respondError(c *gin.Context, err *apierr.APIError) {
	c.JSON(err.HTTPStatus, gin.H{"code": err.Code, "message": err.Message})
}

// respondOK sends a JSON success response with the given data.
func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}
