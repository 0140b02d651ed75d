package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within a context.
// Fields flow through context enrichment, so handlers and services log request
// context (request_id, user_id, resource, etc.) without passing it around.
type LogFields struct {
	RequestID  *string // X-Request-ID of the inbound HTTP request
	UserID     *int64  // Authenticated user, when a bearer token was verified
	Resource   *string // Resource collection (e.g., "blog-posts")
	DocumentID *int64  // Document addressed by the request
	MessageID  *string // Redis stream message ID
	Component  string  // Component name (OTel semantic convention style, e.g., "cms.service.blog_posts")
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
// Context timeouts and cancellation are preserved.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

// mergeFields merges two LogFields, preferring non-nil/non-empty values from 'new'.
func mergeFields(existing, new LogFields) LogFields {
	result := existing

	if new.RequestID != nil {
		result.RequestID = new.RequestID
	}
	if new.UserID != nil {
		result.UserID = new.UserID
	}
	if new.Resource != nil {
		result.Resource = new.Resource
	}
	if new.DocumentID != nil {
		result.DocumentID = new.DocumentID
	}
	if new.MessageID != nil {
		result.MessageID = new.MessageID
	}
	if new.Component != "" {
		result.Component = new.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{UserID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}
