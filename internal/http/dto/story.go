package dto

import (
	"time"

	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/service"
)

type CreateStoryRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=120" jsonschema:"minLength=1,maxLength=120"`
	Role        string  `json:"role" binding:"required,max=120" jsonschema:"minLength=1,maxLength=120"`
	Track       string  `json:"track" binding:"required,max=120" jsonschema:"minLength=1,maxLength=120"`
	Quote       string  `json:"quote" binding:"required,max=500" jsonschema:"minLength=1,maxLength=500"`
	Story       string  `json:"story" binding:"required" jsonschema:"minLength=1"`
	AvatarURL   *string `json:"avatarUrl,omitempty" binding:"omitempty,url|eq=,max=2048" jsonschema:"format=uri"`
	IsPublished bool    `json:"isPublished,omitempty" jsonschema:"default=false"`
	SortOrder   int     `json:"sortOrder,omitempty" binding:"min=0" jsonschema:"minimum=0,default=0"`
}

func (r CreateStoryRequest) ToModel() *model.Story {
	return &model.Story{
		Name:        r.Name,
		Role:        r.Role,
		Track:       r.Track,
		Quote:       r.Quote,
		Story:       r.Story,
		AvatarURL:   r.AvatarURL,
		IsPublished: r.IsPublished,
		SortOrder:   r.SortOrder,
	}
}

type UpdateStoryRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=120"`
	Role        *string `json:"role,omitempty" binding:"omitempty,min=1,max=120"`
	Track       *string `json:"track,omitempty" binding:"omitempty,min=1,max=120"`
	Quote       *string `json:"quote,omitempty" binding:"omitempty,min=1,max=500"`
	Story       *string `json:"story,omitempty" binding:"omitempty,min=1"`
	AvatarURL   *string `json:"avatarUrl,omitempty" binding:"omitempty,url|eq=,max=2048"`
	IsPublished *bool   `json:"isPublished,omitempty"`
	SortOrder   *int    `json:"sortOrder,omitempty" binding:"omitempty,min=0"`
}

func (r UpdateStoryRequest) ToUpdate() service.StoryUpdate {
	return service.StoryUpdate{
		Name:        r.Name,
		Role:        r.Role,
		Track:       r.Track,
		Quote:       r.Quote,
		Story:       r.Story,
		AvatarURL:   r.AvatarURL,
		IsPublished: r.IsPublished,
		SortOrder:   r.SortOrder,
	}
}

type StoryResponse struct {
	ID          int64     `json:"id,string"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Track       string    `json:"track"`
	Quote       string    `json:"quote"`
	Story       string    `json:"story"`
	AvatarURL   *string   `json:"avatarUrl"`
	IsPublished bool      `json:"isPublished"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func ToStoryResponse(s *model.Story) StoryResponse {
	return StoryResponse{
		ID:          s.ID,
		Name:        s.Name,
		Role:        s.Role,
		Track:       s.Track,
		Quote:       s.Quote,
		Story:       s.Story,
		AvatarURL:   s.AvatarURL,
		IsPublished: s.IsPublished,
		SortOrder:   s.SortOrder,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
