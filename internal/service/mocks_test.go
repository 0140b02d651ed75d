package service_test

import (
	"context"
	"errors"
	"sync"

	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/queue"
)

// mockRepo returns zero values unless a function field is set. GetByID
// defaults to an empty document so read-before-write paths proceed.
type mockRepo[T any] struct {
	listFn    func(ctx context.Context, params model.ListParams) ([]T, int64, error)
	getByIDFn func(ctx context.Context, id int64) (*T, error)
	createFn  func(ctx context.Context, doc *T) error
	updateFn  func(ctx context.Context, id int64, patch model.Patch) (*T, error)
	deleteFn  func(ctx context.Context, id int64) error
}

func (m *mockRepo[T]) List(ctx context.Context, params model.ListParams) ([]T, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, params)
	}
	return nil, 0, nil
}

func (m *mockRepo[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return new(T), nil
}

func (m *mockRepo[T]) Create(ctx context.Context, doc *T) error {
	if m.createFn != nil {
		return m.createFn(ctx, doc)
	}
	return nil
}

func (m *mockRepo[T]) Update(ctx context.Context, id int64, patch model.Patch) (*T, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, patch)
	}
	return new(T), nil
}

func (m *mockRepo[T]) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockUserStore struct {
	mockRepo[model.User]
	getByEmailFn func(ctx context.Context, email string) (*model.User, error)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, nil
}

type mockBlogPostStore struct {
	mockRepo[model.BlogPost]
	getBySlugFn func(ctx context.Context, slug string) (*model.BlogPost, error)
}

func (m *mockBlogPostStore) GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, nil
}

type mockEventStore struct {
	mockRepo[model.Event]
	getBySlugFn func(ctx context.Context, slug string) (*model.Event, error)
}

func (m *mockEventStore) GetBySlug(ctx context.Context, slug string) (*model.Event, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, nil
}

type mockTrackStore struct {
	mockRepo[model.Track]
	getBySlugFn func(ctx context.Context, slug string) (*model.Track, error)
}

func (m *mockTrackStore) GetBySlug(ctx context.Context, slug string) (*model.Track, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.ChangeEvent
	fail   bool
}

func (p *recordingPublisher) Publish(_ context.Context, event queue.ChangeEvent) error {
	if p.fail {
		return errors.New("redis unavailable")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []queue.ChangeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]queue.ChangeEvent(nil), p.events...)
}
