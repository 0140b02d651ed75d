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

type EventHandler struct {
	eventService service.EventService
}

func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	q := middleware.Validated[dto.EventQuery](c)

	page, err := h.eventService.List(ctx, q.ToService(middleware.IsStaff(ctx)))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToList(page, dto.ToEventResponse))
}

func (h *EventHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	key := middleware.Validated[dto.LookupParam](c).Key
	staff := middleware.IsStaff(ctx)

	event, err := lookup(ctx, key,
		func(ctx context.Context, id int64) (*model.Event, error) {
			return h.eventService.Get(ctx, id, staff)
		},
		func(ctx context.Context, slug string) (*model.Event, error) {
			return h.eventService.GetBySlug(ctx, slug, staff)
		},
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Data(dto.ToEventResponse(event)))
}

func (h *EventHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	event := middleware.Validated[dto.CreateEventRequest](c).ToModel()

	if err := h.eventService.Create(ctx, event); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Data(dto.ToEventResponse(event)))
}

func (h *EventHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := middleware.Validated[dto.IDParam](c).ID
	req := middleware.Validated[dto.UpdateEventRequest](c)

	event, err := h.eventService.Update(ctx, id, req.ToUpdate())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Data(dto.ToEventResponse(event)))
}

func (h *EventHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := middleware.Validated[dto.IDParam](c).ID

	if err := h.eventService.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
