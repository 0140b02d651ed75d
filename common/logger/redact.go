package logger

import (
	"context"
	"log/slog"
	"strings"
)

const redacted = "[REDACTED]"

// sensitiveKeys are replaced wholesale. Matching ignores case.
var sensitiveKeys = map[string]struct{}{
	"password":      {},
	"password_hash": {},
	"token":         {},
	"authorization": {},
	"secret":        {},
	"jwt_secret":    {},
}

// RedactHandler masks credentials before a record reaches the wrapped
// handler. Email addresses keep their first letter and domain.
type RedactHandler struct {
	slog.Handler
}

func NewRedactHandler(h slog.Handler) *RedactHandler {
	return &RedactHandler{Handler: h}
}

func (h *RedactHandler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(RedactAttr(a))
		return true
	})
	return h.Handler.Handle(ctx, out)
}

func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clean := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		clean[i] = RedactAttr(a)
	}
	return &RedactHandler{Handler: h.Handler.WithAttrs(clean)}
}

func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{Handler: h.Handler.WithGroup(name)}
}

// RedactAttr returns a with sensitive values masked, descending into groups.
func RedactAttr(a slog.Attr) slog.Attr {
	key := strings.ToLower(a.Key)
	if _, ok := sensitiveKeys[key]; ok {
		return slog.String(a.Key, redacted)
	}

	v := a.Value.Resolve()
	switch {
	case v.Kind() == slog.KindGroup:
		group := v.Group()
		clean := make([]any, len(group))
		for i, member := range group {
			clean[i] = RedactAttr(member)
		}
		return slog.Group(a.Key, clean...)
	case key == "email" && v.Kind() == slog.KindString:
		return slog.String(a.Key, MaskEmail(v.String()))
	}
	return slog.Attr{Key: a.Key, Value: v}
}

// MaskEmail turns "alice@example.com" into "a***@example.com".
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return redacted
	}
	return email[:1] + "***" + email[at:]
}
