package service

import (
	"context"
	"time"

	"basegraph.app/cms/common/id"
	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/queue"
	"basegraph.app/cms/internal/store"
)

type EventQuery struct {
	ListQuery
	Status model.EventStatus
}

type EventUpdate struct {
	Title           *string
	Slug            *string
	Description     *string
	Location        *string
	StartsAt        *time.Time
	EndsAt          *time.Time
	Status          *model.EventStatus
	RegistrationURL *string
	ImageURL        *string
	IsPublished     *bool
}

type EventService interface {
	List(ctx context.Context, q EventQuery) (model.Page[model.Event], error)
	Get(ctx context.Context, id int64, staff bool) (*model.Event, error)
	GetBySlug(ctx context.Context, slug string, staff bool) (*model.Event, error)
	Create(ctx context.Context, event *model.Event) error
	Update(ctx context.Context, id int64, in EventUpdate) (*model.Event, error)
	Delete(ctx context.Context, id int64) error
}

type eventService struct {
	store store.EventStore
	*collection[model.Event]
}

func NewEventService(events store.EventStore, publisher queue.Publisher) EventService {
	return &eventService{
		store: events,
		collection: &collection[model.Event]{
			resource: model.ResourceEvents,
			repo:     events,
			events:   publisher,
			listing: listing{
				sortable:     sortFields("starts_at", "ends_at", "created_at", "title"),
				defaultSort:  "starts_at",
				defaultOrder: model.SortAsc,
			},
			id: func(e *model.Event) int64 { return e.ID },
		},
	}
}

func eventVisible(staff bool) func(*model.Event) bool {
	return func(e *model.Event) bool { return staff || e.IsPublished }
}

func (s *eventService) List(ctx context.Context, q EventQuery) (model.Page[model.Event], error) {
	var filters []model.Filter
	if !q.Staff {
		filters = append(filters, model.Eq("is_published", true))
	}
	if q.Status != "" {
		filters = append(filters, model.Eq("status", q.Status))
	}
	return s.list(ctx, q.ListQuery, filters)
}

func (s *eventService) Get(ctx context.Context, id int64, staff bool) (*model.Event, error) {
	return s.get(ctx, id, eventVisible(staff))
}

func (s *eventService) GetBySlug(ctx context.Context, slug string, staff bool) (*model.Event, error) {
	event, err := s.store.GetBySlug(ctx, slug)
	if err != nil {
		return nil, storeError("getting event by slug", err)
	}
	if !eventVisible(staff)(event) {
		return nil, ErrNotFound
	}
	return event, nil
}

func (s *eventService) Create(ctx context.Context, event *model.Event) error {
	slug, err := resolveSlug(event.Slug, event.Title)
	if err != nil {
		return err
	}
	if err := checkEventWindow(event.StartsAt, event.EndsAt); err != nil {
		return err
	}

	event.ID = id.New()
	event.Slug = slug
	event.RegistrationURL = emptyToNil(event.RegistrationURL)
	event.ImageURL = emptyToNil(event.ImageURL)
	if event.Status == "" {
		event.Status = model.EventStatusUpcoming
	}

	return s.create(ctx, event)
}

func (s *eventService) Update(ctx context.Context, id int64, in EventUpdate) (*model.Event, error) {
	patch := model.Patch{}
	set(patch, "title", in.Title)
	set(patch, "description", in.Description)
	set(patch, "location", in.Location)
	set(patch, "starts_at", in.StartsAt)
	set(patch, "ends_at", in.EndsAt)
	set(patch, "status", in.Status)
	setNullable(patch, "registration_url", in.RegistrationURL)
	setNullable(patch, "image_url", in.ImageURL)
	set(patch, "is_published", in.IsPublished)
	if in.Slug != nil {
		slug, err := resolveSlug(*in.Slug, "")
		if err != nil {
			return nil, err
		}
		patch["slug"] = slug
	}

	if in.StartsAt != nil || in.EndsAt != nil {
		current, err := s.store.GetByID(ctx, id)
		if err != nil {
			return nil, storeError("getting event", err)
		}
		startsAt, endsAt := current.StartsAt, current.EndsAt
		if in.StartsAt != nil {
			startsAt = *in.StartsAt
		}
		if in.EndsAt != nil {
			endsAt = in.EndsAt
		}
		if err := checkEventWindow(startsAt, endsAt); err != nil {
			return nil, err
		}
	}

	return s.update(ctx, id, patch)
}

func (s *eventService) Delete(ctx context.Context, id int64) error {
	return s.delete(ctx, id)
}

func checkEventWindow(startsAt time.Time, endsAt *time.Time) error {
	if endsAt != nil && endsAt.Before(startsAt) {
		return invalidField("endsAt", "must not be before startsAt")
	}
	return nil
}
