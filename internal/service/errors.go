package service

import (
	"errors"
	"fmt"
	"strings"

	"basegraph.app/cms/internal/store"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrInvalidSort        = errors.New("invalid sort field")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// FieldError ties a sentinel to the request field that caused it. Field
// uses the JSON (camelCase) name the client sent.
type FieldError struct {
	Err    error
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func invalidField(field, reason string) error {
	return &FieldError{Err: ErrInvalidInput, Field: field, Reason: reason}
}

// storeError translates store sentinels; anything else is wrapped with op.
func storeError(op string, err error) error {
	var conflict *store.ConflictError
	switch {
	case errors.As(err, &conflict):
		field := wireName(conflict.Field)
		if field == "" {
			return ErrConflict
		}
		return &FieldError{Err: ErrConflict, Field: field, Reason: field + " already exists"}
	case errors.Is(err, store.ErrConflict):
		return ErrConflict
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// wireName maps a stored snake_case field to its JSON name.
func wireName(field string) string {
	parts := strings.Split(field, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] == "" {
			continue
		}
		parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
	}
	return strings.Join(parts, "")
}
