// Package memstore is a process-local store.Provider for tests and demos.
// Each collection is guarded by its own mutex, and unique fields are
// enforced by index maps updated under the same lock as the documents.
package memstore

import (
	"context"
	"strings"
	"time"

	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/store"
)

type Store struct {
	users     *userStore
	blogPosts *blogPostStore
	events    *eventStore
	tracks    *trackStore
	stories   *storyStore
	partners  *partnerStore
}

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func New(opts ...Option) *Store {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store{
		users:     &userStore{newCollection(store.UserCollection, o.now)},
		blogPosts: &blogPostStore{newCollection(store.BlogPostCollection, o.now)},
		events:    &eventStore{newCollection(store.EventCollection, o.now)},
		tracks:    &trackStore{newCollection(store.TrackCollection, o.now)},
		stories:   &storyStore{newCollection(store.StoryCollection, o.now)},
		partners:  &partnerStore{newCollection(store.PartnerCollection, o.now)},
	}
}

func (s *Store) Users() store.UserStore         { return s.users }
func (s *Store) BlogPosts() store.BlogPostStore { return s.blogPosts }
func (s *Store) Events() store.EventStore       { return s.events }
func (s *Store) Tracks() store.TrackStore       { return s.tracks }
func (s *Store) Stories() store.StoryStore      { return s.stories }
func (s *Store) Partners() store.PartnerStore   { return s.partners }

var _ store.Provider = (*Store)(nil)

type userStore struct {
	*collection[model.User]
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getBy(ctx, "email", strings.ToLower(email))
}

type blogPostStore struct {
	*collection[model.BlogPost]
}

func (s *blogPostStore) GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	return s.getBy(ctx, "slug", slug)
}

type eventStore struct {
	*collection[model.Event]
}

func (s *eventStore) GetBySlug(ctx context.Context, slug string) (*model.Event, error) {
	return s.getBy(ctx, "slug", slug)
}

type trackStore struct {
	*collection[model.Track]
}

func (s *trackStore) GetBySlug(ctx context.Context, slug string) (*model.Track, error) {
	return s.getBy(ctx, "slug", slug)
}

type storyStore struct {
	*collection[model.Story]
}

type partnerStore struct {
	*collection[model.Partner]
}

func (s *partnerStore) GetBySlug(ctx context.Context, slug string) (*model.Partner, error) {
	return s.getBy(ctx, "slug", slug)
}
