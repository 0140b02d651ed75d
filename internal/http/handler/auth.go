package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"basegraph.app/cms/internal/http/dto"
	"basegraph.app/cms/internal/http/middleware"
	"basegraph.app/cms/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
	tokenTTL    time.Duration
}

func NewAuthHandler(authService service.AuthService, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, tokenTTL: tokenTTL}
}

func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	req := middleware.Validated[dto.LoginRequest](c)

	token, user, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Data(dto.LoginResponse{
		Token:     token,
		ExpiresIn: int64(h.tokenTTL.Seconds()),
		User:      dto.ToUserResponse(user),
	}))
}

func (h *AuthHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()
	claims, ok := middleware.GetClaims(ctx)
	if !ok {
		middleware.AbortWithError(c, http.StatusUnauthorized, dto.CodeAuthentication, "authentication required")
		return
	}

	user, err := h.authService.Me(ctx, claims.UserID)
	if err != nil {
		// A valid token for a deleted account is no longer a session.
		if errors.Is(err, service.ErrNotFound) {
			slog.InfoContext(ctx, "token refers to a deleted user", "user_id", claims.UserID)
			middleware.AbortWithError(c, http.StatusUnauthorized, dto.CodeAuthentication, "user no longer exists")
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Data(dto.MeResponse{User: dto.ToUserResponse(user)}))
}
