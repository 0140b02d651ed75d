package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"basegraph.app/cms/common/id"
	"basegraph.app/cms/common/logger"
	"basegraph.app/cms/common/otel"
	"basegraph.app/cms/core/config"
	"basegraph.app/cms/internal/auth"
	"basegraph.app/cms/internal/http/dto"
	"basegraph.app/cms/internal/http/middleware"
	httprouter "basegraph.app/cms/internal/http/router"
	"basegraph.app/cms/internal/queue"
	"basegraph.app/cms/internal/ratelimit"
	"basegraph.app/cms/internal/service"
	"basegraph.app/cms/internal/store/backends"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		// Can't use slog yet: OTel failed before logger setup
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint, "sample_ratio", cfg.OTel.SampleRatio)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "cms starting", "env", cfg.Env, "service", cfg.OTel.ServiceName, "store", cfg.Store.Backend)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}
	if err := dto.RegisterValidators(); err != nil {
		slog.ErrorContext(ctx, "failed to register validators", "error", err)
		os.Exit(1)
	}

	backend, err := backends.Open(ctx, cfg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to open store", "error", err)
		os.Exit(1)
	}
	defer backend.Close()

	events := queue.NewNopPublisher()
	limiter := ratelimit.Limiter(ratelimit.NewMemory(cfg.RateLimit.LoginAttempts, cfg.RateLimit.LoginWindow))
	if cfg.Redis.Enabled() {
		redisClient, err := connectRedis(ctx, cfg.Redis)
		if err != nil {
			slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		slog.InfoContext(ctx, "redis connected", "stream", cfg.Redis.EventsStream)

		events = queue.NewRedisPublisher(redisClient, cfg.Redis.EventsStream, cfg.Redis.EventsMaxLen, slog.Default())
		limiter = ratelimit.NewRedis(redisClient, "cms:ratelimit", cfg.RateLimit.LoginAttempts, cfg.RateLimit.LoginWindow)
	}
	defer events.Close()

	tokens := auth.NewTokenService(auth.TokenConfig{
		Secret: []byte(cfg.Auth.JWTSecret),
		Issuer: cfg.Auth.Issuer,
		TTL:    cfg.Auth.TokenTTL,
	})

	services := service.NewServices(backend.Provider, tokens, events)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := setupRouter(cfg, services, tokens, limiter)
	if err != nil {
		slog.ErrorContext(ctx, "failed to set up router", "error", err)
		os.Exit(1)
	}
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           withCORS(cfg.CORS, router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func connectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return client, nil
}

func setupRouter(cfg config.Config, services *service.Services, tokens *auth.TokenService, limiter ratelimit.Limiter) (*gin.Engine, error) {
	router, err := httprouter.NewEngine(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}

	// Order matters: request id → OTel span → Recovery catches panics → Logger logs with trace context
	router.Use(middleware.RequestID())
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		Tokens:       tokens,
		TokenTTL:     tokens.TTL(),
		LoginLimiter: limiter,
	})

	return router, nil
}

func withCORS(cfg config.CORSConfig, h http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader, "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	})(h)
}

const banner = `
 ██████╗███╗   ███╗███████╗
██╔════╝████╗ ████║██╔════╝
██║     ██╔████╔██║███████╗
██║     ██║╚██╔╝██║╚════██║
╚██████╗██║ ╚═╝ ██║███████║
 ╚═════╝╚═╝     ╚═╝╚══════╝
`
