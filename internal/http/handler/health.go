package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"basegraph.app/cms/internal/http/dto"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
