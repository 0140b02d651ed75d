package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"basegraph.app/cms/internal/http/dto"
	"basegraph.app/cms/internal/http/handler"
	"basegraph.app/cms/internal/http/middleware"
	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/ratelimit"
	"basegraph.app/cms/internal/service"
)

type RouterConfig struct {
	Tokens       middleware.TokenVerifier
	TokenTTL     time.Duration
	LoginLimiter ratelimit.Limiter
}

// NewEngine returns a bare engine that honours X-Forwarded-For only from the
// given proxy addresses or CIDRs. With none, ClientIP is the peer address.
func NewEngine(trustedProxies []string) (*gin.Engine, error) {
	engine := gin.New()
	if err := engine.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("setting trusted proxies: %w", err)
	}
	return engine, nil
}

// access bundles the middleware chains shared by resource routers.
type access struct {
	read  gin.HandlerFunc
	admin []gin.HandlerFunc
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	api := router.Group("/api")
	api.GET("/health", handler.Health)

	acl := access{
		read:  middleware.OptionalAuth(cfg.Tokens),
		admin: []gin.HandlerFunc{middleware.Authenticate(cfg.Tokens), middleware.Authorize(model.RoleAdmin)},
	}

	authHandler := handler.NewAuthHandler(services.Auth(), cfg.TokenTTL)
	AuthRouter(api.Group("/auth"), authHandler, cfg)

	BlogPostRouter(api.Group("/"+string(model.ResourceBlogPosts)), handler.NewBlogPostHandler(services.BlogPosts()), acl)
	EventRouter(api.Group("/"+string(model.ResourceEvents)), handler.NewEventHandler(services.Events()), acl)
	TrackRouter(api.Group("/"+string(model.ResourceTracks)), handler.NewTrackHandler(services.Tracks()), acl)
	StoryRouter(api.Group("/"+string(model.ResourceStories)), handler.NewStoryHandler(services.Stories()), acl)
	PartnerRouter(api.Group("/"+string(model.ResourcePartners)), handler.NewPartnerHandler(services.Partners()), acl)

	admin := api.Group("", acl.admin...)
	{
		UserRouter(admin.Group("/"+string(model.ResourceUsers)), handler.NewUserHandler(services.Users()))
		admin.GET("/schemas/:resource", middleware.Validate[dto.SchemaParam](middleware.Params), handler.Schema)
	}
}
