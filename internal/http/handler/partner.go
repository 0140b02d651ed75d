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

type PartnerHandler struct {
	partnerService service.PartnerService
}

func NewPartnerHandler(partnerService service.PartnerService) *PartnerHandler {
	return &PartnerHandler{partnerService: partnerService}
}

func (h *PartnerHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	q := middleware.Validated[dto.ListQuery](c)

	page, err := h.partnerService.List(ctx, q.ToService(middleware.IsStaff(ctx)))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToList(page, dto.ToPartnerResponse))
}

func (h *PartnerHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	key := middleware.Validated[dto.LookupParam](c).Key
	staff := middleware.IsStaff(ctx)

	partner, err := lookup(ctx, key,
		func(ctx context.Context, id int64) (*model.Partner, error) {
			return h.partnerService.Get(ctx, id, staff)
		},
		func(ctx context.Context, slug string) (*model.Partner, error) {
			return h.partnerService.GetBySlug(ctx, slug, staff)
		},
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Data(dto.ToPartnerResponse(partner)))
}

func (h *PartnerHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	partner := middleware.Validated[dto.CreatePartnerRequest](c).ToModel()

	if err := h.partnerService.Create(ctx, partner); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Data(dto.ToPartnerResponse(partner)))
}

func (h *PartnerHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := middleware.Validated[dto.IDParam](c).ID
	req := middleware.Validated[dto.UpdatePartnerRequest](c)

	partner, err := h.partnerService.Update(ctx, id, req.ToUpdate())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Data(dto.ToPartnerResponse(partner)))
}

func (h *PartnerHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := middleware.Validated[dto.IDParam](c).ID

	if err := h.partnerService.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
