package arangostore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/arangodb/go-driver/v2/arangodb/shared"

	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/store"
)

// projection strips ArangoDB system attributes so documents decode into models.
const projection = `UNSET(%s, "_key", "_id", "_rev")`

type collection[T any] struct {
	db   arangodb.Database
	coll store.Collection[T]
	now  func() time.Time
}

func newCollection[T any](db arangodb.Database, coll store.Collection[T], now func() time.Time) *collection[T] {
	return &collection[T]{db: db, coll: coll, now: now}
}

func (c *collection[T]) List(ctx context.Context, params model.ListParams) ([]T, int64, error) {
	if err := c.coll.CheckList(params); err != nil {
		return nil, 0, err
	}

	filter, bindVars := filterClause(params.Filters)
	bindVars["@col"] = c.coll.Name

	countQuery := fmt.Sprintf("FOR d IN @@col%s COLLECT WITH COUNT INTO n RETURN n", filter)
	var total int64
	if err := c.queryOne(ctx, countQuery, bindVars, &total); err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, 0, fmt.Errorf("counting %s: %w", c.coll.Name, err)
	}
	if total == 0 {
		return []T{}, 0, nil
	}

	sortExpr := c.sortClause(params, bindVars)
	bindVars["offset"] = params.Offset()
	bindVars["limit"] = params.Limit
	listQuery := fmt.Sprintf("FOR d IN @@col%s SORT %s LIMIT @offset, @limit RETURN "+projection,
		filter, sortExpr, "d")

	items, err := c.queryAll(ctx, listQuery, bindVars)
	if err != nil {
		return nil, 0, fmt.Errorf("listing %s: %w", c.coll.Name, err)
	}
	return items, total, nil
}

func (c *collection[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	query := "FOR d IN @@col FILTER d._key == @key RETURN " + fmt.Sprintf(projection, "d")
	var doc T
	if err := c.queryOne(ctx, query, map[string]any{"@col": c.coll.Name, "key": key(id)}, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *collection[T]) getBy(ctx context.Context, field string, value any) (*T, error) {
	query := "FOR d IN @@col FILTER d.@field == @value LIMIT 1 RETURN " + fmt.Sprintf(projection, "d")
	var doc T
	bindVars := map[string]any{"@col": c.coll.Name, "field": field, "value": value}
	if err := c.queryOne(ctx, query, bindVars, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *collection[T]) Create(ctx context.Context, doc *T) error {
	now := c.now().UTC()
	c.coll.Stamp(doc, now, now)

	fields, err := toDocument(doc)
	if err != nil {
		return err
	}
	fields["_key"] = key(c.coll.ID(doc))

	cursor, err := c.db.Query(ctx, "INSERT @doc INTO @@col", &arangodb.QueryOptions{
		BindVars: map[string]any{"@col": c.coll.Name, "doc": fields},
	})
	if err != nil {
		return c.mapError(err)
	}
	return cursor.Close()
}

func (c *collection[T]) Update(ctx context.Context, id int64, patch model.Patch) (*T, error) {
	if err := c.coll.CheckPatch(patch); err != nil {
		return nil, err
	}

	changes := make(map[string]any, len(patch)+1)
	for k, v := range patch {
		changes[k] = v
	}
	changes[store.FieldUpdatedAt] = c.now().UTC()

	query := "UPDATE @key WITH @patch IN @@col OPTIONS { keepNull: true, mergeObjects: false } RETURN " +
		fmt.Sprintf(projection, "NEW")
	var doc T
	bindVars := map[string]any{"@col": c.coll.Name, "key": key(id), "patch": changes}
	if err := c.queryOne(ctx, query, bindVars, &doc); err != nil {
		return nil, c.mapError(err)
	}
	return &doc, nil
}

func (c *collection[T]) Delete(ctx context.Context, id int64) error {
	cursor, err := c.db.Query(ctx, "REMOVE @key IN @@col", &arangodb.QueryOptions{
		BindVars: map[string]any{"@col": c.coll.Name, "key": key(id)},
	})
	if err != nil {
		return c.mapError(err)
	}
	return cursor.Close()
}

func (c *collection[T]) queryAll(ctx context.Context, query string, bindVars map[string]any) ([]T, error) {
	cursor, err := c.db.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer cursor.Close()

	items := []T{}
	for cursor.HasMore() {
		var doc T
		if _, err := cursor.ReadDocument(ctx, &doc); err != nil {
			return nil, fmt.Errorf("read document: %w", err)
		}
		items = append(items, doc)
	}
	return items, nil
}

// queryOne decodes the first result into out, or returns store.ErrNotFound.
func (c *collection[T]) queryOne(ctx context.Context, query string, bindVars map[string]any, out any) error {
	cursor, err := c.db.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		return err
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return store.ErrNotFound
	}
	if _, err := cursor.ReadDocument(ctx, out); err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	return nil
}

func (c *collection[T]) mapError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return err
	case shared.IsNotFound(err):
		return store.ErrNotFound
	case shared.IsConflict(err):
		return &store.ConflictError{Field: c.conflictField(err)}
	}
	return err
}

// conflictField finds the attribute named in ArangoDB's
// "unique constraint violated ... over 'slug'" message.
func (c *collection[T]) conflictField(err error) string {
	msg := err.Error()
	for _, field := range c.coll.Unique {
		if strings.Contains(msg, "'"+field+"'") {
			return field
		}
	}
	return ""
}

func (c *collection[T]) sortClause(params model.ListParams, bindVars map[string]any) string {
	dir := "ASC"
	if params.Order == model.SortDesc {
		dir = "DESC"
	}
	if params.Sort == "" || params.Sort == store.FieldID {
		return "d.id " + dir
	}

	bindVars["sort"] = params.Sort
	expr := "d.@sort"
	if c.coll.IsTimeField(params.Sort) {
		expr = "DATE_TIMESTAMP(d.@sort)"
	}
	// Missing values sort last in both directions.
	return fmt.Sprintf("d.@sort == null ASC, %s %s, d.id %s", expr, dir, dir)
}

func filterClause(filters []model.Filter) (string, map[string]any) {
	bindVars := make(map[string]any, 2*len(filters)+4)
	var b strings.Builder
	for i, f := range filters {
		fieldVar, valueVar := fmt.Sprintf("f%d", i), fmt.Sprintf("v%d", i)
		bindVars[fieldVar] = f.Field
		bindVars[valueVar] = f.Value
		switch f.Op {
		case model.FilterContains:
			fmt.Fprintf(&b, " FILTER @%s IN d.@%s", valueVar, fieldVar)
		default:
			fmt.Fprintf(&b, " FILTER d.@%s == @%s", fieldVar, valueVar)
		}
	}
	return b.String(), bindVars
}

func toDocument[T any](doc *T) (map[string]any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var fields map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return fields, nil
}

func key(id int64) string {
	return strconv.FormatInt(id, 10)
}
