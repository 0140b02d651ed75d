package service

import (
	"context"
	"strings"

	"basegraph.app/cms/common/id"
	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/queue"
	"basegraph.app/cms/internal/store"
)

type StoryQuery struct {
	ListQuery
	Track string
}

type StoryUpdate struct {
	Name        *string
	Role        *string
	Track       *string
	Quote       *string
	Story       *string
	AvatarURL   *string
	IsPublished *bool
	SortOrder   *int
}

type StoryService interface {
	List(ctx context.Context, q StoryQuery) (model.Page[model.Story], error)
	Get(ctx context.Context, id int64, staff bool) (*model.Story, error)
	Create(ctx context.Context, story *model.Story) error
	Update(ctx context.Context, id int64, in StoryUpdate) (*model.Story, error)
	Delete(ctx context.Context, id int64) error
}

type storyService struct {
	*collection[model.Story]
}

func NewStoryService(stories store.StoryStore, events queue.Publisher) StoryService {
	return &storyService{
		collection: &collection[model.Story]{
			resource: model.ResourceStories,
			repo:     stories,
			events:   events,
			listing: listing{
				sortable:     sortFields("sort_order", "name", "created_at"),
				defaultSort:  "sort_order",
				defaultOrder: model.SortAsc,
			},
			id: func(s *model.Story) int64 { return s.ID },
		},
	}
}

func (s *storyService) List(ctx context.Context, q StoryQuery) (model.Page[model.Story], error) {
	var filters []model.Filter
	if !q.Staff {
		filters = append(filters, model.Eq("is_published", true))
	}
	if track := strings.TrimSpace(q.Track); track != "" {
		filters = append(filters, model.Eq("track", track))
	}
	return s.list(ctx, q.ListQuery, filters)
}

func (s *storyService) Get(ctx context.Context, id int64, staff bool) (*model.Story, error) {
	return s.get(ctx, id, func(story *model.Story) bool { return staff || story.IsPublished })
}

func (s *storyService) Create(ctx context.Context, story *model.Story) error {
	story.ID = id.New()
	story.Track = strings.TrimSpace(story.Track)
	story.AvatarURL = emptyToNil(story.AvatarURL)
	return s.create(ctx, story)
}

func (s *storyService) Update(ctx context.Context, id int64, in StoryUpdate) (*model.Story, error) {
	patch := model.Patch{}
	set(patch, "name", in.Name)
	set(patch, "role", in.Role)
	if in.Track != nil {
		patch["track"] = strings.TrimSpace(*in.Track)
	}
	set(patch, "quote", in.Quote)
	set(patch, "story", in.Story)
	setNullable(patch, "avatar_url", in.AvatarURL)
	set(patch, "is_published", in.IsPublished)
	set(patch, "sort_order", in.SortOrder)
	return s.update(ctx, id, patch)
}

func (s *storyService) Delete(ctx context.Context, id int64) error {
	return s.delete(ctx, id)
}
