package store

import (
	"fmt"
	"slices"
	"time"

	"basegraph.app/cms/internal/model"
)

// Field names every collection stores in addition to Collection.Fields.
const (
	FieldID        = "id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

// Collection describes how a model type is persisted, independent of backend.
// Field names are the snake_case names used for columns and document attributes.
type Collection[T any] struct {
	Name string
	// Fields are the writable fields in insert order (excluding id and timestamps).
	Fields []string
	// Unique fields are backed by a unique index in every backend.
	Unique []string
	// ArrayFields may be used with model.FilterContains.
	ArrayFields []string
	// TimeFields hold timestamps; created_at and updated_at are implied.
	TimeFields []string

	ID     func(doc *T) int64
	Values func(doc *T) []any
	Stamp  func(doc *T, createdAt, updatedAt time.Time)
}

// Columns returns every stored field in select order.
func (c Collection[T]) Columns() []string {
	cols := make([]string, 0, len(c.Fields)+3)
	cols = append(cols, FieldID)
	cols = append(cols, c.Fields...)
	return append(cols, FieldCreatedAt, FieldUpdatedAt)
}

// HasField reports whether name is a stored field of this collection.
func (c Collection[T]) HasField(name string) bool {
	return slices.Contains(c.Columns(), name)
}

// IsTimeField reports whether name holds a timestamp.
func (c Collection[T]) IsTimeField(name string) bool {
	return name == FieldCreatedAt || name == FieldUpdatedAt || slices.Contains(c.TimeFields, name)
}

// CheckPatch rejects patches that name unknown or read-only fields.
func (c Collection[T]) CheckPatch(patch model.Patch) error {
	for field := range patch {
		if !slices.Contains(c.Fields, field) {
			return fmt.Errorf("%s: field %q is not writable", c.Name, field)
		}
	}
	return nil
}

// CheckList rejects sort keys and filters on fields the collection does not store.
func (c Collection[T]) CheckList(params model.ListParams) error {
	if params.Sort != "" && !c.HasField(params.Sort) {
		return fmt.Errorf("%s: cannot sort by %q", c.Name, params.Sort)
	}
	for _, f := range params.Filters {
		if !c.HasField(f.Field) {
			return fmt.Errorf("%s: cannot filter by %q", c.Name, f.Field)
		}
		if f.Op == model.FilterContains && !slices.Contains(c.ArrayFields, f.Field) {
			return fmt.Errorf("%s: field %q is not an array", c.Name, f.Field)
		}
	}
	return nil
}
