package router

import (
	"github.com/gin-gonic/gin"

	"basegraph.app/cms/internal/http/dto"
	"basegraph.app/cms/internal/http/handler"
	"basegraph.app/cms/internal/http/middleware"
)

func StoryRouter(rg *gin.RouterGroup, h *handler.StoryHandler, acl access) {
	rg.GET("", acl.read, middleware.Validate[dto.StoryQuery](middleware.Query), h.List)
	rg.GET("/:id", acl.read, middleware.Validate[dto.LookupParam](middleware.Params), h.Get)

	admin := rg.Group("", acl.admin...)
	{
		admin.POST("", middleware.Validate[dto.CreateStoryRequest](middleware.Body), h.Create)
		admin.PUT("/:id",
			middleware.Validate[dto.IDParam](middleware.Params),
			middleware.Validate[dto.UpdateStoryRequest](middleware.Body),
			h.Update,
		)
		admin.DELETE("/:id", middleware.Validate[dto.IDParam](middleware.Params), h.Delete)
	}
}
