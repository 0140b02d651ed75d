package router

import (
	"github.com/gin-gonic/gin"

	"basegraph.app/cms/internal/http/dto"
	"basegraph.app/cms/internal/http/handler"
	"basegraph.app/cms/internal/http/middleware"
)

// UserRouter expects rg to already require an admin token.
func UserRouter(rg *gin.RouterGroup, h *handler.UserHandler) {
	rg.GET("", middleware.Validate[dto.ListQuery](middleware.Query), h.List)
	rg.GET("/:id", middleware.Validate[dto.IDParam](middleware.Params), h.Get)
	rg.POST("", middleware.Validate[dto.CreateUserRequest](middleware.Body), h.Create)
	rg.PUT("/:id",
		middleware.Validate[dto.IDParam](middleware.Params),
		middleware.Validate[dto.UpdateUserRequest](middleware.Body),
		h.Update,
	)
	rg.DELETE("/:id", middleware.Validate[dto.IDParam](middleware.Params), h.Delete)
}
