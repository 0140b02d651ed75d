package dto

import (
	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/service"
)

// ListQuery is the pagination part shared by every list endpoint. Page and
// Limit are pointers so an explicit 0 is rejected rather than defaulted.
type ListQuery struct {
	Page  *int   `form:"page" binding:"omitempty,min=1"`
	Limit *int   `form:"limit" binding:"omitempty,min=1,max=100"`
	Sort  string `form:"sort" binding:"omitempty,max=64"`
	Order string `form:"order" binding:"omitempty,sortorder"`
}

func (q ListQuery) ToService(staff bool) service.ListQuery {
	return service.ListQuery{
		Page:  valueOr(q.Page, 0),
		Limit: valueOr(q.Limit, 0),
		Sort:  q.Sort,
		Order: model.SortOrder(q.Order),
		Staff: staff,
	}
}

type BlogPostQuery struct {
	ListQuery
	Tag    string `form:"tag" binding:"omitempty,max=64"`
	Status string `form:"status" binding:"omitempty,oneof=draft published archived"`
}

func (q BlogPostQuery) ToService(staff bool) service.BlogPostQuery {
	return service.BlogPostQuery{
		ListQuery: q.ListQuery.ToService(staff),
		Tag:       q.Tag,
		Status:    model.PostStatus(q.Status),
	}
}

type EventQuery struct {
	ListQuery
	Status string `form:"status" binding:"omitempty,oneof=upcoming ongoing completed cancelled"`
}

func (q EventQuery) ToService(staff bool) service.EventQuery {
	return service.EventQuery{
		ListQuery: q.ListQuery.ToService(staff),
		Status:    model.EventStatus(q.Status),
	}
}

type StoryQuery struct {
	ListQuery
	Track string `form:"track" binding:"omitempty,max=120"`
}

func (q StoryQuery) ToService(staff bool) service.StoryQuery {
	return service.StoryQuery{
		ListQuery: q.ListQuery.ToService(staff),
		Track:     q.Track,
	}
}

// LookupParam addresses a document by id or, for sluggable resources, slug.
type LookupParam struct {
	Key string `uri:"id" binding:"required,max=128"`
}

// IDParam addresses a document by its numeric id only.
type IDParam struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type SchemaParam struct {
	Resource string `uri:"resource" binding:"required,max=64"`
}
