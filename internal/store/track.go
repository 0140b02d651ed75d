package store

import (
	"context"
	"time"

	"basegraph.app/cms/internal/model"
)

var TrackCollection = Collection[model.Track]{
	Name: "tracks",
	Fields: []string{
		"name", "slug", "description", "skills", "learning_outcomes", "icon",
		"is_active", "sort_order",
	},
	Unique:      []string{"name", "slug"},
	ArrayFields: []string{"skills", "learning_outcomes"},
	ID:          func(t *model.Track) int64 { return t.ID },
	Values: func(t *model.Track) []any {
		return []any{
			t.Name, t.Slug, t.Description, nonNil(t.Skills), nonNil(t.LearningOutcomes), t.Icon,
			t.IsActive, t.SortOrder,
		}
	},
	Stamp: func(t *model.Track, createdAt, updatedAt time.Time) {
		t.CreatedAt, t.UpdatedAt = createdAt, updatedAt
	},
}

type trackStore struct {
	*table[model.Track]
}

func newTrackStore(db DBTX) TrackStore {
	return &trackStore{table: newTable(db, TrackCollection)}
}

func (s *trackStore) GetBySlug(ctx context.Context, slug string) (*model.Track, error) {
	return s.getBy(ctx, "slug", slug)
}
