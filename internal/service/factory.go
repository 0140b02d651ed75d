package service

import (
	"basegraph.app/cms/internal/auth"
	"basegraph.app/cms/internal/queue"
	"basegraph.app/cms/internal/store"
)

type Services struct {
	stores store.Provider
	tokens *auth.TokenService
	events queue.Publisher
}

func NewServices(stores store.Provider, tokens *auth.TokenService, events queue.Publisher) *Services {
	if events == nil {
		events = queue.NewNopPublisher()
	}
	return &Services{
		stores: stores,
		tokens: tokens,
		events: events,
	}
}

func (s *Services) Auth() AuthService {
	return NewAuthService(s.stores.Users(), s.tokens)
}

func (s *Services) Users() UserService {
	return NewUserService(s.stores.Users(), s.events)
}

func (s *Services) BlogPosts() BlogPostService {
	return NewBlogPostService(s.stores.BlogPosts(), s.events)
}

func (s *Services) Events() EventService {
	return NewEventService(s.stores.Events(), s.events)
}

func (s *Services) Tracks() TrackService {
	return NewTrackService(s.stores.Tracks(), s.events)
}

func (s *Services) Stories() StoryService {
	return NewStoryService(s.stores.Stories(), s.events)
}

func (s *Services) Partners() PartnerService {
	return NewPartnerService(s.stores.Partners(), s.events)
}
