package store

import (
	"context"
	"time"

	"basegraph.app/cms/internal/model"
)

var EventCollection = Collection[model.Event]{
	Name: "events",
	Fields: []string{
		"title", "slug", "description", "location", "starts_at", "ends_at",
		"status", "registration_url", "image_url", "is_published",
	},
	Unique:     []string{"slug"},
	TimeFields: []string{"starts_at", "ends_at"},
	ID:         func(e *model.Event) int64 { return e.ID },
	Values: func(e *model.Event) []any {
		return []any{
			e.Title, e.Slug, e.Description, e.Location, e.StartsAt, e.EndsAt,
			e.Status, e.RegistrationURL, e.ImageURL, e.IsPublished,
		}
	},
	Stamp: func(e *model.Event, createdAt, updatedAt time.Time) {
		e.CreatedAt, e.UpdatedAt = createdAt, updatedAt
	},
}

type eventStore struct {
	*table[model.Event]
}

func newEventStore(db DBTX) EventStore {
	return &eventStore{table: newTable(db, EventCollection)}
}

func (s *eventStore) GetBySlug(ctx context.Context, slug string) (*model.Event, error) {
	return s.getBy(ctx, "slug", slug)
}
