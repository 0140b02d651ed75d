package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Publisher announces document changes.
type Publisher interface {
	Publish(ctx context.Context, event ChangeEvent) error
	Close() error
}

type redisPublisher struct {
	client *redis.Client
	stream string
	maxLen int64
	logger *slog.Logger
}

// NewRedisPublisher appends events to stream with XADD. The stream is
// trimmed approximately to maxLen entries when maxLen is positive.
func NewRedisPublisher(client *redis.Client, stream string, maxLen int64, logger *slog.Logger) Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisPublisher{
		client: client,
		stream: stream,
		maxLen: maxLen,
		logger: logger,
	}
}

func (p *redisPublisher) Publish(ctx context.Context, event ChangeEvent) error {
	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: event.values(),
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("publish change event: %w", err)
	}

	p.logger.DebugContext(ctx, "published change event",
		"resource", event.Resource,
		"action", event.Action,
		"id", event.ID)
	return nil
}

func (p *redisPublisher) Close() error {
	return p.client.Close()
}

type nopPublisher struct{}

// NewNopPublisher drops every event. Used when Redis is not configured.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, ChangeEvent) error { return nil }
func (nopPublisher) Close() error                               { return nil }
