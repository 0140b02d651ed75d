package middleware

import (
	"github.com/gin-gonic/gin"

	"basegraph.app/cms/common/logger"
	"basegraph.app/cms/internal/http/dto"
)

// AbortWithError writes the error envelope and stops the chain.
func AbortWithError(c *gin.Context, status int, code, message string, details ...dto.ErrorDetail) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Error: dto.ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
			TraceID: traceID(c),
		},
	})
}

// traceID falls back to the request id when tracing is off.
func traceID(c *gin.Context) string {
	if id := logger.TraceID(c.Request.Context()); id != "" {
		return id
	}
	return c.GetString(requestIDKey)
}
