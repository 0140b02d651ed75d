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

type TrackHandler struct {
	trackService service.TrackService
}

func NewTrackHandler(trackService service.TrackService) *TrackHandler {
	return &TrackHandler{trackService: trackService}
}

func (h *TrackHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	q := middleware.Validated[dto.ListQuery](c)

	page, err := h.trackService.List(ctx, q.ToService(middleware.IsStaff(ctx)))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToList(page, dto.ToTrackResponse))
}

func (h *TrackHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	key := middleware.Validated[dto.LookupParam](c).Key
	staff := middleware.IsStaff(ctx)

	track, err := lookup(ctx, key,
		func(ctx context.Context, id int64) (*model.Track, error) {
			return h.trackService.Get(ctx, id, staff)
		},
		func(ctx context.Context, slug string) (*model.Track, error) {
			return h.trackService.GetBySlug(ctx, slug, staff)
		},
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Data(dto.ToTrackResponse(track)))
}

func (h *TrackHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	track := middleware.Validated[dto.CreateTrackRequest](c).ToModel()

	if err := h.trackService.Create(ctx, track); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Data(dto.ToTrackResponse(track)))
}

func (h *TrackHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := middleware.Validated[dto.IDParam](c).ID
	req := middleware.Validated[dto.UpdateTrackRequest](c)

	track, err := h.trackService.Update(ctx, id, req.ToUpdate())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Data(dto.ToTrackResponse(track)))
}

func (h *TrackHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := middleware.Validated[dto.IDParam](c).ID

	if err := h.trackService.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
