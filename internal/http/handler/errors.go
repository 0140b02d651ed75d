package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"basegraph.app/cms/internal/http/dto"
	"basegraph.app/cms/internal/http/middleware"
	"basegraph.app/cms/internal/service"
)

// respondError maps service errors onto the error envelope. Anything
// unrecognised is logged and hidden behind a 500.
func respondError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var details []dto.ErrorDetail
	var fieldErr *service.FieldError
	if errors.As(err, &fieldErr) {
		details = []dto.ErrorDetail{{Field: fieldErr.Field, Rule: ruleFor(fieldErr.Err), Message: fieldErr.Reason}}
	}

	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrInvalidSort):
		middleware.AbortWithError(c, http.StatusBadRequest, dto.CodeValidation, err.Error(), details...)
	case errors.Is(err, service.ErrNotFound):
		middleware.AbortWithError(c, http.StatusNotFound, dto.CodeNotFound, "resource not found")
	case errors.Is(err, service.ErrConflict):
		message := "resource already exists"
		if fieldErr != nil {
			message = fieldErr.Reason
		}
		middleware.AbortWithError(c, http.StatusConflict, dto.CodeConflict, message, details...)
	case errors.Is(err, service.ErrInvalidCredentials):
		middleware.AbortWithError(c, http.StatusUnauthorized, dto.CodeAuthentication, "invalid email or password")
	default:
		slog.ErrorContext(ctx, "request failed", "error", err, "path", c.FullPath())
		middleware.AbortWithError(c, http.StatusInternalServerError, dto.CodeInternal, "internal server error")
	}
}

func ruleFor(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidSort):
		return "sort"
	case errors.Is(err, service.ErrConflict):
		return "unique"
	}
	return "invalid"
}
