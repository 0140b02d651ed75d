package dto

import (
	"time"

	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/service"
)

type CreateTrackRequest struct {
	Name             string   `json:"name" binding:"required,min=1,max=120" jsonschema:"minLength=1,maxLength=120"`
	Slug             string   `json:"slug,omitempty" binding:"omitempty,slug" jsonschema:"maxLength=120"`
	Description      string   `json:"description" binding:"required,max=5000" jsonschema:"minLength=1,maxLength=5000"`
	Skills           []string `json:"skills,omitempty" binding:"omitempty,max=50,dive,min=1,max=120"`
	LearningOutcomes []string `json:"learningOutcomes,omitempty" binding:"omitempty,max=50,dive,min=1,max=500"`
	Icon             *string  `json:"icon,omitempty" binding:"omitempty,max=120"`
	IsActive         *bool    `json:"isActive,omitempty" jsonschema:"default=true"`
	SortOrder        int      `json:"sortOrder,omitempty" binding:"min=0" jsonschema:"minimum=0,default=0"`
}

// ToModel applies the create defaults: tracks are active unless told otherwise.
func (r CreateTrackRequest) ToModel() *model.Track {
	return &model.Track{
		Name:             r.Name,
		Slug:             r.Slug,
		Description:      r.Description,
		Skills:           r.Skills,
		LearningOutcomes: r.LearningOutcomes,
		Icon:             r.Icon,
		IsActive:         valueOr(r.IsActive, true),
		SortOrder:        r.SortOrder,
	}
}

type UpdateTrackRequest struct {
	Name             *string   `json:"name,omitempty" binding:"omitempty,min=1,max=120"`
	Slug             *string   `json:"slug,omitempty" binding:"omitempty,slug"`
	Description      *string   `json:"description,omitempty" binding:"omitempty,min=1,max=5000"`
	Skills           *[]string `json:"skills,omitempty" binding:"omitempty,max=50,dive,min=1,max=120"`
	LearningOutcomes *[]string `json:"learningOutcomes,omitempty" binding:"omitempty,max=50,dive,min=1,max=500"`
	Icon             *string   `json:"icon,omitempty" binding:"omitempty,max=120"`
	IsActive         *bool     `json:"isActive,omitempty"`
	SortOrder        *int      `json:"sortOrder,omitempty" binding:"omitempty,min=0"`
}

func (r UpdateTrackRequest) ToUpdate() service.TrackUpdate {
	return service.TrackUpdate{
		Name:             r.Name,
		Slug:             r.Slug,
		Description:      r.Description,
		Skills:           r.Skills,
		LearningOutcomes: r.LearningOutcomes,
		Icon:             r.Icon,
		IsActive:         r.IsActive,
		SortOrder:        r.SortOrder,
	}
}

type TrackResponse struct {
	ID               int64     `json:"id,string"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	Description      string    `json:"description"`
	Skills           []string  `json:"skills"`
	LearningOutcomes []string  `json:"learningOutcomes"`
	Icon             *string   `json:"icon"`
	IsActive         bool      `json:"isActive"`
	SortOrder        int       `json:"sortOrder"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func ToTrackResponse(t *model.Track) TrackResponse {
	return TrackResponse{
		ID:               t.ID,
		Name:             t.Name,
		Slug:             t.Slug,
		Description:      t.Description,
		Skills:           nonNil(t.Skills),
		LearningOutcomes: nonNil(t.LearningOutcomes),
		Icon:             t.Icon,
		IsActive:         t.IsActive,
		SortOrder:        t.SortOrder,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}
