package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"basegraph.app/cms/common/logger"
	"basegraph.app/cms/internal/auth"
	"basegraph.app/cms/internal/http/dto"
	"basegraph.app/cms/internal/model"
)

type contextKey string

const claimsContextKey contextKey = "claims"

type TokenVerifier interface {
	Verify(token string) (auth.Claims, error)
}

// Authenticate requires a valid bearer token and attaches its claims to
// the request context.
func Authenticate(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			AbortWithError(c, http.StatusUnauthorized, dto.CodeAuthentication, "missing bearer token")
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			message := "invalid token"
			if errors.Is(err, auth.ErrTokenExpired) {
				message = "token expired"
			}
			AbortWithError(c, http.StatusUnauthorized, dto.CodeAuthentication, message)
			return
		}

		attachClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth attaches claims if a valid token is present, but never aborts.
// Use for public reads where staff see unpublished documents.
func OptionalAuth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := bearerToken(c); ok {
			if claims, err := tokens.Verify(raw); err == nil {
				attachClaims(c, claims)
			}
		}
		c.Next()
	}
}

// Authorize must run after Authenticate.
func Authorize(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c.Request.Context())
		if !ok {
			AbortWithError(c, http.StatusUnauthorized, dto.CodeAuthentication, "authentication required")
			return
		}
		if !slices.Contains(roles, claims.Role) {
			AbortWithError(c, http.StatusForbidden, dto.CodeAuthorization, "insufficient role")
			return
		}
		c.Next()
	}
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(auth.Claims)
	return claims, ok
}

// IsStaff reports whether the request carries a staff token.
func IsStaff(ctx context.Context) bool {
	claims, ok := GetClaims(ctx)
	return ok && claims.Role.IsStaff()
}

func attachClaims(c *gin.Context, claims auth.Claims) {
	ctx := context.WithValue(c.Request.Context(), claimsContextKey, claims)
	ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &claims.UserID})
	c.Request = c.Request.WithContext(ctx)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
