package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"basegraph.app/cms/internal/http/dto"
	"basegraph.app/cms/internal/http/middleware"
	"basegraph.app/cms/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	q := middleware.Validated[dto.ListQuery](c)

	page, err := h.userService.List(ctx, q.ToService(true))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToList(page, dto.ToUserResponse))
}

func (h *UserHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	id := middleware.Validated[dto.IDParam](c).ID

	user, err := h.userService.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Data(dto.ToUserResponse(user)))
}

func (h *UserHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	req := middleware.Validated[dto.CreateUserRequest](c)

	user, err := h.userService.Create(ctx, req.ToCreate())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Data(dto.ToUserResponse(user)))
}

func (h *UserHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := middleware.Validated[dto.IDParam](c).ID
	req := middleware.Validated[dto.UpdateUserRequest](c)

	user, err := h.userService.Update(ctx, id, req.ToUpdate())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Data(dto.ToUserResponse(user)))
}

func (h *UserHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := middleware.Validated[dto.IDParam](c).ID

	if claims, ok := middleware.GetClaims(ctx); ok && claims.UserID == id {
		slog.InfoContext(ctx, "refusing self-deletion", "user_id", id)
		middleware.AbortWithError(c, http.StatusBadRequest, dto.CodeValidation, "cannot delete your own account",
			dto.ErrorDetail{Field: "id", Rule: "self"})
		return
	}

	if err := h.userService.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
