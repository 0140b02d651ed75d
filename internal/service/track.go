package service

import (
	"context"
	"strings"

	"basegraph.app/cms/common/id"
	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/queue"
	"basegraph.app/cms/internal/store"
)

type TrackUpdate struct {
	Name             *string
	Slug             *string
	Description      *string
	Skills           *[]string
	LearningOutcomes *[]string
	Icon             *string
	IsActive         *bool
	SortOrder        *int
}

type TrackService interface {
	List(ctx context.Context, q ListQuery) (model.Page[model.Track], error)
	Get(ctx context.Context, id int64, staff bool) (*model.Track, error)
	GetBySlug(ctx context.Context, slug string, staff bool) (*model.Track, error)
	Create(ctx context.Context, track *model.Track) error
	Update(ctx context.Context, id int64, in TrackUpdate) (*model.Track, error)
	Delete(ctx context.Context, id int64) error
}

type trackService struct {
	store store.TrackStore
	*collection[model.Track]
}

func NewTrackService(tracks store.TrackStore, events queue.Publisher) TrackService {
	return &trackService{
		store: tracks,
		collection: &collection[model.Track]{
			resource: model.ResourceTracks,
			repo:     tracks,
			events:   events,
			listing: listing{
				sortable:     sortFields("sort_order", "name", "created_at"),
				defaultSort:  "sort_order",
				defaultOrder: model.SortAsc,
			},
			id: func(t *model.Track) int64 { return t.ID },
		},
	}
}

func trackVisible(staff bool) func(*model.Track) bool {
	return func(t *model.Track) bool { return staff || t.IsActive }
}

func (s *trackService) List(ctx context.Context, q ListQuery) (model.Page[model.Track], error) {
	var filters []model.Filter
	if !q.Staff {
		filters = append(filters, model.Eq("is_active", true))
	}
	return s.list(ctx, q, filters)
}

func (s *trackService) Get(ctx context.Context, id int64, staff bool) (*model.Track, error) {
	return s.get(ctx, id, trackVisible(staff))
}

func (s *trackService) GetBySlug(ctx context.Context, slug string, staff bool) (*model.Track, error) {
	track, err := s.store.GetBySlug(ctx, slug)
	if err != nil {
		return nil, storeError("getting track by slug", err)
	}
	if !trackVisible(staff)(track) {
		return nil, ErrNotFound
	}
	return track, nil
}

func (s *trackService) Create(ctx context.Context, track *model.Track) error {
	slug, err := resolveSlug(track.Slug, track.Name)
	if err != nil {
		return err
	}

	track.ID = id.New()
	track.Name = strings.TrimSpace(track.Name)
	track.Slug = slug
	track.Skills = normalizeList(track.Skills)
	track.LearningOutcomes = normalizeList(track.LearningOutcomes)
	track.Icon = emptyToNil(track.Icon)

	return s.create(ctx, track)
}

func (s *trackService) Update(ctx context.Context, id int64, in TrackUpdate) (*model.Track, error) {
	patch := model.Patch{}
	if in.Name != nil {
		patch["name"] = strings.TrimSpace(*in.Name)
	}
	set(patch, "description", in.Description)
	setNullable(patch, "icon", in.Icon)
	set(patch, "is_active", in.IsActive)
	set(patch, "sort_order", in.SortOrder)
	if in.Skills != nil {
		patch["skills"] = normalizeList(*in.Skills)
	}
	if in.LearningOutcomes != nil {
		patch["learning_outcomes"] = normalizeList(*in.LearningOutcomes)
	}
	if in.Slug != nil {
		slug, err := resolveSlug(*in.Slug, "")
		if err != nil {
			return nil, err
		}
		patch["slug"] = slug
	}

	return s.update(ctx, id, patch)
}

func (s *trackService) Delete(ctx context.Context, id int64) error {
	return s.delete(ctx, id)
}
