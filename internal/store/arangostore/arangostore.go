// Package arangostore implements store.Provider on ArangoDB. Each resource
// lives in its own document collection keyed by the decimal id, and unique
// fields are backed by unique persistent indexes.
package arangostore

import (
	"context"
	"strings"
	"time"

	"basegraph.app/cms/common/arangodb"
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

// CollectionNames lists every collection the store manages.
func CollectionNames() []string {
	return []string{
		store.UserCollection.Name,
		store.BlogPostCollection.Name,
		store.EventCollection.Name,
		store.TrackCollection.Name,
		store.StoryCollection.Name,
		store.PartnerCollection.Name,
	}
}

// New ensures collections and unique indexes exist, then returns the store.
func New(ctx context.Context, client *arangodb.Client) (*Store, error) {
	for _, c := range []struct {
		name   string
		unique []string
	}{
		{store.UserCollection.Name, store.UserCollection.Unique},
		{store.BlogPostCollection.Name, store.BlogPostCollection.Unique},
		{store.EventCollection.Name, store.EventCollection.Unique},
		{store.TrackCollection.Name, store.TrackCollection.Unique},
		{store.StoryCollection.Name, store.StoryCollection.Unique},
		{store.PartnerCollection.Name, store.PartnerCollection.Unique},
	} {
		if err := client.EnsureCollection(ctx, c.name, c.unique); err != nil {
			return nil, err
		}
	}

	db := client.Database()
	now := time.Now
	return &Store{
		users:     &userStore{newCollection(db, store.UserCollection, now)},
		blogPosts: &blogPostStore{newCollection(db, store.BlogPostCollection, now)},
		events:    &eventStore{newCollection(db, store.EventCollection, now)},
		tracks:    &trackStore{newCollection(db, store.TrackCollection, now)},
		stories:   &storyStore{newCollection(db, store.StoryCollection, now)},
		partners:  &partnerStore{newCollection(db, store.PartnerCollection, now)},
	}, nil
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
