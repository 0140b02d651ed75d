package dto

import (
	"time"

	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/service"
)

type CreatePartnerRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=120" jsonschema:"minLength=1,maxLength=120"`
	Slug        string  `json:"slug,omitempty" binding:"omitempty,slug" jsonschema:"maxLength=120"`
	LogoURL     string  `json:"logoUrl" binding:"required,url,max=2048" jsonschema:"format=uri"`
	WebsiteURL  *string `json:"websiteUrl,omitempty" binding:"omitempty,url|eq=,max=2048" jsonschema:"format=uri"`
	Description string  `json:"description,omitempty" binding:"max=2000" jsonschema:"maxLength=2000"`
	IsActive    *bool   `json:"isActive,omitempty" jsonschema:"default=true"`
	SortOrder   int     `json:"sortOrder,omitempty" binding:"min=0" jsonschema:"minimum=0,default=0"`
}

func (r CreatePartnerRequest) ToModel() *model.Partner {
	return &model.Partner{
		Name:        r.Name,
		Slug:        r.Slug,
		LogoURL:     r.LogoURL,
		WebsiteURL:  r.WebsiteURL,
		Description: r.Description,
		IsActive:    valueOr(r.IsActive, true),
		SortOrder:   r.SortOrder,
	}
}

type UpdatePartnerRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=120"`
	Slug        *string `json:"slug,omitempty" binding:"omitempty,slug"`
	LogoURL     *string `json:"logoUrl,omitempty" binding:"omitempty,url,max=2048"`
	WebsiteURL  *string `json:"websiteUrl,omitempty" binding:"omitempty,url|eq=,max=2048"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=2000"`
	IsActive    *bool   `json:"isActive,omitempty"`
	SortOrder   *int    `json:"sortOrder,omitempty" binding:"omitempty,min=0"`
}

func (r UpdatePartnerRequest) ToUpdate() service.PartnerUpdate {
	return service.PartnerUpdate{
		Name:        r.Name,
		Slug:        r.Slug,
		LogoURL:     r.LogoURL,
		WebsiteURL:  r.WebsiteURL,
		Description: r.Description,
		IsActive:    r.IsActive,
		SortOrder:   r.SortOrder,
	}
}

type PartnerResponse struct {
	ID          int64     `json:"id,string"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	LogoURL     string    `json:"logoUrl"`
	WebsiteURL  *string   `json:"websiteUrl"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func ToPartnerResponse(p *model.Partner) PartnerResponse {
	return PartnerResponse{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		LogoURL:     p.LogoURL,
		WebsiteURL:  p.WebsiteURL,
		Description: p.Description,
		IsActive:    p.IsActive,
		SortOrder:   p.SortOrder,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
