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

type BlogPostHandler struct {
	blogPostService service.BlogPostService
}

func NewBlogPostHandler(blogPostService service.BlogPostService) *BlogPostHandler {
	return &BlogPostHandler{blogPostService: blogPostService}
}

func (h *BlogPostHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	q := middleware.Validated[dto.BlogPostQuery](c)

	page, err := h.blogPostService.List(ctx, q.ToService(middleware.IsStaff(ctx)))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToList(page, dto.ToBlogPostResponse))
}

func (h *BlogPostHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	key := middleware.Validated[dto.LookupParam](c).Key
	staff := middleware.IsStaff(ctx)

	post, err := lookup(ctx, key,
		func(ctx context.Context, id int64) (*model.BlogPost, error) {
			return h.blogPostService.Get(ctx, id, staff)
		},
		func(ctx context.Context, slug string) (*model.BlogPost, error) {
			return h.blogPostService.GetBySlug(ctx, slug, staff)
		},
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Data(dto.ToBlogPostResponse(post)))
}

func (h *BlogPostHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	post := middleware.Validated[dto.CreateBlogPostRequest](c).ToModel()

	if err := h.blogPostService.Create(ctx, post); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Data(dto.ToBlogPostResponse(post)))
}

func (h *BlogPostHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := middleware.Validated[dto.IDParam](c).ID
	req := middleware.Validated[dto.UpdateBlogPostRequest](c)

	post, err := h.blogPostService.Update(ctx, id, req.ToUpdate())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Data(dto.ToBlogPostResponse(post)))
}

func (h *BlogPostHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := middleware.Validated[dto.IDParam](c).ID

	if err := h.blogPostService.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
