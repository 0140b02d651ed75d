package dto

import (
	"time"

	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/service"
)

type CreateEventRequest struct {
	Title           string     `json:"title" binding:"required,min=1,max=200" jsonschema:"minLength=1,maxLength=200"`
	Slug            string     `json:"slug,omitempty" binding:"omitempty,slug" jsonschema:"maxLength=120"`
	Description     string     `json:"description,omitempty" binding:"max=5000" jsonschema:"maxLength=5000"`
	Location        string     `json:"location" binding:"required,max=200" jsonschema:"minLength=1,maxLength=200"`
	StartsAt        time.Time  `json:"startsAt" binding:"required"`
	EndsAt          *time.Time `json:"endsAt,omitempty" binding:"omitempty,gtefield=StartsAt"`
	Status          string     `json:"status,omitempty" binding:"omitempty,oneof=upcoming ongoing completed cancelled" jsonschema:"enum=upcoming,enum=ongoing,enum=completed,enum=cancelled,default=upcoming"`
	RegistrationURL *string    `json:"registrationUrl,omitempty" binding:"omitempty,url|eq=,max=2048" jsonschema:"format=uri"`
	ImageURL        *string    `json:"imageUrl,omitempty" binding:"omitempty,url|eq=,max=2048" jsonschema:"format=uri"`
	IsPublished     bool       `json:"isPublished,omitempty" jsonschema:"default=false"`
}

func (r CreateEventRequest) ToModel() *model.Event {
	return &model.Event{
		Title:           r.Title,
		Slug:            r.Slug,
		Description:     r.Description,
		Location:        r.Location,
		StartsAt:        r.StartsAt,
		EndsAt:          r.EndsAt,
		Status:          model.EventStatus(r.Status),
		RegistrationURL: r.RegistrationURL,
		ImageURL:        r.ImageURL,
		IsPublished:     r.IsPublished,
	}
}

type UpdateEventRequest struct {
	Title           *string    `json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Slug            *string    `json:"slug,omitempty" binding:"omitempty,slug"`
	Description     *string    `json:"description,omitempty" binding:"omitempty,max=5000"`
	Location        *string    `json:"location,omitempty" binding:"omitempty,min=1,max=200"`
	StartsAt        *time.Time `json:"startsAt,omitempty"`
	EndsAt          *time.Time `json:"endsAt,omitempty"`
	Status          *string    `json:"status,omitempty" binding:"omitempty,oneof=upcoming ongoing completed cancelled"`
	RegistrationURL *string    `json:"registrationUrl,omitempty" binding:"omitempty,url|eq=,max=2048"`
	ImageURL        *string    `json:"imageUrl,omitempty" binding:"omitempty,url|eq=,max=2048"`
	IsPublished     *bool      `json:"isPublished,omitempty"`
}

func (r UpdateEventRequest) ToUpdate() service.EventUpdate {
	return service.EventUpdate{
		Title:           r.Title,
		Slug:            r.Slug,
		Description:     r.Description,
		Location:        r.Location,
		StartsAt:        r.StartsAt,
		EndsAt:          r.EndsAt,
		Status:          enumPtr[model.EventStatus](r.Status),
		RegistrationURL: r.RegistrationURL,
		ImageURL:        r.ImageURL,
		IsPublished:     r.IsPublished,
	}
}

type EventResponse struct {
	ID              int64      `json:"id,string"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Description     string     `json:"description"`
	Location        string     `json:"location"`
	StartsAt        time.Time  `json:"startsAt"`
	EndsAt          *time.Time `json:"endsAt"`
	Status          string     `json:"status"`
	RegistrationURL *string    `json:"registrationUrl"`
	ImageURL        *string    `json:"imageUrl"`
	IsPublished     bool       `json:"isPublished"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func ToEventResponse(e *model.Event) EventResponse {
	return EventResponse{
		ID:              e.ID,
		Title:           e.Title,
		Slug:            e.Slug,
		Description:     e.Description,
		Location:        e.Location,
		StartsAt:        e.StartsAt,
		EndsAt:          e.EndsAt,
		Status:          string(e.Status),
		RegistrationURL: e.RegistrationURL,
		ImageURL:        e.ImageURL,
		IsPublished:     e.IsPublished,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}
