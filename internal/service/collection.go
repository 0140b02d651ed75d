package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"basegraph.app/cms/common/logger"
	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/queue"
	"basegraph.app/cms/internal/store"
)

// collection carries the CRUD plumbing every resource service shares:
// spans, log fields, store error translation and change events.
type collection[T any] struct {
	resource model.Resource
	repo     store.Repository[T]
	events   queue.Publisher
	listing  listing
	id       func(*T) int64
}

func (c *collection[T]) start(ctx context.Context, op string) (context.Context, *logger.SpanContext) {
	sc := logger.StartSpan(ctx, "service."+string(c.resource)+"."+op)
	ctx = logger.WithLogFields(sc.Context(), logger.LogFields{
		Resource:  logger.Ptr(string(c.resource)),
		Component: "cms.service." + string(c.resource),
	})
	return ctx, sc
}

func (c *collection[T]) list(ctx context.Context, q ListQuery, filters []model.Filter) (model.Page[T], error) {
	ctx, sc := c.start(ctx, "list")
	defer sc.End()

	params, err := c.listing.params(q, filters)
	if err != nil {
		return model.Page[T]{}, err
	}

	items, total, err := c.repo.List(ctx, params)
	if err != nil {
		sc.RecordError(err)
		slog.ErrorContext(ctx, "failed to list documents", "error", err)
		return model.Page[T]{}, storeError("listing "+string(c.resource), err)
	}
	return model.NewPage(items, params, total), nil
}

// get hides documents the caller may not see behind ErrNotFound.
func (c *collection[T]) get(ctx context.Context, id int64, visible func(*T) bool) (*T, error) {
	ctx, sc := c.start(ctx, "get")
	defer sc.End()

	doc, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("getting "+string(c.resource), err)
	}
	if visible != nil && !visible(doc) {
		return nil, ErrNotFound
	}
	return doc, nil
}

func (c *collection[T]) create(ctx context.Context, doc *T) error {
	ctx, sc := c.start(ctx, "create")
	defer sc.End()

	id := c.id(doc)
	ctx = withDocument(ctx, sc, id)

	if err := c.repo.Create(ctx, doc); err != nil {
		sc.RecordError(err)
		slog.WarnContext(ctx, "failed to create document", "error", err)
		return storeError("creating "+string(c.resource), err)
	}

	slog.InfoContext(ctx, "document created")
	c.publish(ctx, queue.ActionCreated, id)
	return nil
}

func (c *collection[T]) update(ctx context.Context, id int64, patch model.Patch) (*T, error) {
	ctx, sc := c.start(ctx, "update")
	defer sc.End()
	ctx = withDocument(ctx, sc, id)

	doc, err := c.repo.Update(ctx, id, patch)
	if err != nil {
		sc.RecordError(err)
		slog.WarnContext(ctx, "failed to update document", "error", err)
		return nil, storeError("updating "+string(c.resource), err)
	}

	slog.InfoContext(ctx, "document updated", "fields", len(patch))
	c.publish(ctx, queue.ActionUpdated, id)
	return doc, nil
}

func (c *collection[T]) delete(ctx context.Context, id int64) error {
	ctx, sc := c.start(ctx, "delete")
	defer sc.End()
	ctx = withDocument(ctx, sc, id)

	if err := c.repo.Delete(ctx, id); err != nil {
		sc.RecordError(err)
		slog.WarnContext(ctx, "failed to delete document", "error", err)
		return storeError("deleting "+string(c.resource), err)
	}

	slog.InfoContext(ctx, "document deleted")
	c.publish(ctx, queue.ActionDeleted, id)
	return nil
}

func withDocument(ctx context.Context, sc *logger.SpanContext, id int64) context.Context {
	sc.SetAttributes(attribute.Int64("cms.document_id", id))
	return logger.WithLogFields(ctx, logger.LogFields{DocumentID: &id})
}

// publish logs failures instead of returning them.
func (c *collection[T]) publish(ctx context.Context, action queue.Action, id int64) {
	event := queue.ChangeEvent{
		Resource: c.resource,
		Action:   action,
		ID:       id,
		At:       time.Now().UTC(),
		TraceID:  logger.TraceID(ctx),
	}
	if err := c.events.Publish(ctx, event); err != nil {
		slog.ErrorContext(ctx, "failed to publish change event", "error", err, "action", action)
	}
}
