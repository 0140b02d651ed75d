package router

import (
	"github.com/gin-gonic/gin"

	"basegraph.app/cms/internal/http/dto"
	"basegraph.app/cms/internal/http/handler"
	"basegraph.app/cms/internal/http/middleware"
)

func AuthRouter(rg *gin.RouterGroup, h *handler.AuthHandler, cfg RouterConfig) {
	login := []gin.HandlerFunc{middleware.Validate[dto.LoginRequest](middleware.Body), h.Login}
	if cfg.LoginLimiter != nil {
		login = append([]gin.HandlerFunc{middleware.RateLimit(cfg.LoginLimiter, "login")}, login...)
	}
	rg.POST("/login", login...)
	rg.GET("/me", middleware.Authenticate(cfg.Tokens), h.Me)
}
