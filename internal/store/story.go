package store

import (
	"time"

	"basegraph.app/cms/internal/model"
)

var StoryCollection = Collection[model.Story]{
	Name: "stories",
	Fields: []string{
		"name", "role", "track", "quote", "story", "avatar_url", "is_published", "sort_order",
	},
	ID: func(s *model.Story) int64 { return s.ID },
	Values: func(s *model.Story) []any {
		return []any{s.Name, s.Role, s.Track, s.Quote, s.Story, s.AvatarURL, s.IsPublished, s.SortOrder}
	},
	Stamp: func(s *model.Story, createdAt, updatedAt time.Time) {
		s.CreatedAt, s.UpdatedAt = createdAt, updatedAt
	},
}

type storyStore struct {
	*table[model.Story]
}

func newStoryStore(db DBTX) StoryStore {
	return &storyStore{table: newTable(db, StoryCollection)}
}
