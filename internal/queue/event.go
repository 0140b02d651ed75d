package queue

import (
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"basegraph.app/cms/internal/model"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// ChangeEvent tells downstream consumers (static site rebuilds, caches)
// that a document changed.
type ChangeEvent struct {
	Resource model.Resource
	Action   Action
	ID       int64
	At       time.Time
	TraceID  string
}

func (e ChangeEvent) values() map[string]any {
	fields := map[string]any{
		"resource": string(e.Resource),
		"action":   string(e.Action),
		"id":       strconv.FormatInt(e.ID, 10),
		"at":       e.At.UTC().Format(time.RFC3339Nano),
	}
	if e.TraceID != "" {
		fields["trace_id"] = e.TraceID
	}
	return fields
}

// ParseChangeEvent decodes a stream entry written by the producer.
func ParseChangeEvent(msg redis.XMessage) (ChangeEvent, error) {
	resource, err := parseString(msg.Values, "resource")
	if err != nil {
		return ChangeEvent{}, err
	}
	action, err := parseString(msg.Values, "action")
	if err != nil {
		return ChangeEvent{}, err
	}
	id, err := parseInt64(msg.Values, "id")
	if err != nil {
		return ChangeEvent{}, err
	}
	rawAt, err := parseString(msg.Values, "at")
	if err != nil {
		return ChangeEvent{}, err
	}
	at, err := time.Parse(time.RFC3339Nano, rawAt)
	if err != nil {
		return ChangeEvent{}, fmt.Errorf("parsing at: %w", err)
	}

	return ChangeEvent{
		Resource: model.Resource(resource),
		Action:   Action(action),
		ID:       id,
		At:       at,
		TraceID:  parseOptionalString(msg.Values, "trace_id"),
	}, nil
}

func parseInt64(values map[string]any, key string) (int64, error) {
	raw, ok := values[key]
	if !ok {
		return 0, fmt.Errorf("missing %s", key)
	}
	num, err := strconv.ParseInt(fmt.Sprint(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return num, nil
}

func parseString(values map[string]any, key string) (string, error) {
	raw, ok := values[key]
	if !ok {
		return "", fmt.Errorf("missing %s", key)
	}
	return fmt.Sprint(raw), nil
}

func parseOptionalString(values map[string]any, key string) string {
	raw, ok := values[key]
	if !ok {
		return ""
	}
	return fmt.Sprint(raw)
}
