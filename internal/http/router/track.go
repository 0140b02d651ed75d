package router

import (
	"github.com/gin-gonic/gin"

	"basegraph.app/cms/internal/http/dto"
	"basegraph.app/cms/internal/http/handler"
	"basegraph.app/cms/internal/http/middleware"
)

func TrackRouter(rg *gin.RouterGroup, h *handler.TrackHandler, acl access) {
	rg.GET("", acl.read, middleware.Validate[dto.ListQuery](middleware.Query), h.List)
	rg.GET("/:id", acl.read, middleware.Validate[dto.LookupParam](middleware.Params), h.Get)

	admin := rg.Group("", acl.admin...)
	{
		admin.POST("", middleware.Validate[dto.CreateTrackRequest](middleware.Body), h.Create)
		admin.PUT("/:id",
			middleware.Validate[dto.IDParam](middleware.Params),
			middleware.Validate[dto.UpdateTrackRequest](middleware.Body),
			h.Update,
		)
		admin.DELETE("/:id", middleware.Validate[dto.IDParam](middleware.Params), h.Delete)
	}
}
