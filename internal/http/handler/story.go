package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"basegraph.app/cms/internal/http/dto"
	"basegraph.app/cms/internal/http/middleware"
	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/service"
)

type StoryHandler struct {
	storyService service.StoryService
}

func NewStoryHandler(storyService service.StoryService) *StoryHandler {
	return &StoryHandler{storyService: storyService}
}

func (h *StoryHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	q := middleware.Validated[dto.StoryQuery](c)

	page, err := h.storyService.List(ctx, q.ToService(middleware.IsStaff(ctx)))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToList(page, dto.ToStoryResponse))
}

func (h *StoryHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	key := middleware.Validated[dto.LookupParam](c).Key
	staff := middleware.IsStaff(ctx)

	story, err := lookup(ctx, key,
		func(ctx context.Context, id int64) (*model.Story, error) {
			return h.storyService.Get(ctx, id, staff)
		},
		nil,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Data(dto.ToStoryResponse(story)))
}

func (h *StoryHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	story := middleware.Validated[dto.CreateStoryRequest](c).ToModel()

	if err := h.storyService.Create(ctx, story); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Data(dto.ToStoryResponse(story)))
}

func (h *StoryHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := middleware.Validated[dto.IDParam](c).ID
	req := middleware.Validated[dto.UpdateStoryRequest](c)

	story, err := h.storyService.Update(ctx, id, req.ToUpdate())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Data(dto.ToStoryResponse(story)))
}

func (h *StoryHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := middleware.Validated[dto.IDParam](c).ID

	if err := h.storyService.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
