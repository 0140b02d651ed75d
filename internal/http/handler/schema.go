package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"basegraph.app/cms/internal/http/dto"
	"basegraph.app/cms/internal/http/middleware"
	"basegraph.app/cms/internal/model"
)

// Schema serves the create payload schema the admin panel renders forms from.
func Schema(c *gin.Context) {
	resource := middleware.Validated[dto.SchemaParam](c).Resource

	schema, err := dto.Schema(model.Resource(resource))
	if err != nil {
		middleware.AbortWithError(c, http.StatusNotFound, dto.CodeNotFound, err.Error())
		return
	}

	c.JSON(http.StatusOK, schema)
}
