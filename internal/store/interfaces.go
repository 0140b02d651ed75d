package store

import (
	"context"
	"errors"
	"fmt"

	"basegraph.app/cms/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write collides with a unique index.
var ErrConflict = errors.New("conflict")

// ConflictError names the unique field that collided. It matches ErrConflict.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	if e.Field == "" {
		return ErrConflict.Error()
	}
	return fmt.Sprintf("conflict on %s", e.Field)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// Repository is the CRUD contract shared by every collection.
type Repository[T any] interface {
	List(ctx context.Context, params model.ListParams) ([]T, int64, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, doc *T) error
	Update(ctx context.Context, id int64, patch model.Patch) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// UserStore defines the contract for user data access
type UserStore interface {
	Repository[model.User]
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type BlogPostStore interface {
	Repository[model.BlogPost]
	GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
}

type EventStore interface {
	Repository[model.Event]
	GetBySlug(ctx context.Context, slug string) (*model.Event, error)
}

type TrackStore interface {
	Repository[model.Track]
	GetBySlug(ctx context.Context, slug string) (*model.Track, error)
}

type StoryStore interface {
	Repository[model.Story]
}

type PartnerStore interface {
	Repository[model.Partner]
	GetBySlug(ctx context.Context, slug string) (*model.Partner, error)
}

// Provider is implemented by every storage backend.
type Provider interface {
	Users() UserStore
	BlogPosts() BlogPostStore
	Events() EventStore
	Tracks() TrackStore
	Stories() StoryStore
	Partners() PartnerStore
}
