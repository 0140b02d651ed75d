package memstore

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"sync"
	"time"

	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/store"
)

// collection keeps documents in their JSON object form so filters, sorts
// and patches address fields by their stored name.
type collection[T any] struct {
	mu     sync.RWMutex
	coll   store.Collection[T]
	now    func() time.Time
	docs   map[int64]map[string]any
	unique map[string]map[string]int64
}

func newCollection[T any](coll store.Collection[T], now func() time.Time) *collection[T] {
	unique := make(map[string]map[string]int64, len(coll.Unique))
	for _, field := range coll.Unique {
		unique[field] = make(map[string]int64)
	}
	return &collection[T]{
		coll:   coll,
		now:    now,
		docs:   make(map[int64]map[string]any),
		unique: unique,
	}
}

func (c *collection[T]) List(ctx context.Context, params model.ListParams) ([]T, int64, error) {
	if err := c.coll.CheckList(params); err != nil {
		return nil, 0, err
	}
	filters, err := normalizeFilters(params.Filters)
	if err != nil {
		return nil, 0, err
	}

	c.mu.RLock()
	matched := make([]map[string]any, 0, len(c.docs))
	for _, doc := range c.docs {
		if matches(doc, filters) {
			matched = append(matched, doc)
		}
	}
	c.mu.RUnlock()

	slices.SortFunc(matched, c.comparator(params))

	total := int64(len(matched))
	start := min(params.Offset(), len(matched))
	end := min(start+params.Limit, len(matched))

	items := make([]T, 0, end-start)
	for _, doc := range matched[start:end] {
		item, err := decode[T](doc)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, total, nil
}

func (c *collection[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	c.mu.RLock()
	doc, ok := c.docs[id]
	c.mu.RUnlock()
	if !ok {
		return nil, store.ErrNotFound
	}
	item, err := decode[T](doc)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *collection[T]) getBy(ctx context.Context, field string, value any) (*T, error) {
	c.mu.RLock()
	id, ok := c.unique[field][uniqueKey(value)]
	c.mu.RUnlock()
	if !ok {
		return nil, store.ErrNotFound
	}
	return c.GetByID(ctx, id)
}

func (c *collection[T]) Create(ctx context.Context, doc *T) error {
	now := c.now().UTC()
	c.coll.Stamp(doc, now, now)

	fields, err := encode(doc)
	if err != nil {
		return err
	}
	id := c.coll.ID(doc)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.docs[id]; exists {
		return &store.ConflictError{Field: store.FieldID}
	}
	if err := c.checkUnique(fields, 0); err != nil {
		return err
	}
	c.docs[id] = fields
	c.index(fields, id)
	return nil
}

func (c *collection[T]) Update(ctx context.Context, id int64, patch model.Patch) (*T, error) {
	if err := c.coll.CheckPatch(patch); err != nil {
		return nil, err
	}
	normalized, err := normalize(map[string]any(patch))
	if err != nil {
		return nil, err
	}
	changes, _ := normalized.(map[string]any)

	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.docs[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	next := make(map[string]any, len(current))
	for k, v := range current {
		next[k] = v
	}
	for k, v := range changes {
		next[k] = v
	}
	next[store.FieldUpdatedAt] = c.now().UTC().Format(time.RFC3339Nano)

	if err := c.checkUnique(next, id); err != nil {
		return nil, err
	}
	item, err := decode[T](next)
	if err != nil {
		return nil, err
	}

	c.unindex(current)
	c.docs[id] = next
	c.index(next, id)
	return &item, nil
}

func (c *collection[T]) Delete(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc, ok := c.docs[id]
	if !ok {
		return store.ErrNotFound
	}
	c.unindex(doc)
	delete(c.docs, id)
	return nil
}

// checkUnique must be called with the write lock held. self is the id of
// the document being replaced, or 0 on insert.
func (c *collection[T]) checkUnique(doc map[string]any, self int64) error {
	for _, field := range c.coll.Unique {
		owner, taken := c.unique[field][uniqueKey(doc[field])]
		if taken && owner != self {
			return &store.ConflictError{Field: field}
		}
	}
	return nil
}

func (c *collection[T]) index(doc map[string]any, id int64) {
	for _, field := range c.coll.Unique {
		c.unique[field][uniqueKey(doc[field])] = id
	}
}

func (c *collection[T]) unindex(doc map[string]any) {
	for _, field := range c.coll.Unique {
		delete(c.unique[field], uniqueKey(doc[field]))
	}
}

func (c *collection[T]) comparator(params model.ListParams) func(a, b map[string]any) int {
	desc := params.Order == model.SortDesc
	isTime := c.coll.IsTimeField(params.Sort)
	return func(a, b map[string]any) int {
		if params.Sort != "" && params.Sort != store.FieldID {
			av, bv := a[params.Sort], b[params.Sort]
			// Missing values sort last in both directions.
			switch {
			case av == nil && bv != nil:
				return 1
			case av != nil && bv == nil:
				return -1
			}
			if r := compareValues(av, bv, isTime); r != 0 {
				if desc {
					return -r
				}
				return r
			}
		}
		r := cmp.Compare(docID(a), docID(b))
		if desc {
			return -r
		}
		return r
	}
}

func compareValues(a, b any, isTime bool) int {
	switch av := a.(type) {
	case json.Number:
		bv, _ := b.(json.Number)
		return compareNumbers(av, bv)
	case bool:
		bv, _ := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	case string:
		bv, _ := b.(string)
		if isTime {
			at, aerr := time.Parse(time.RFC3339Nano, av)
			bt, berr := time.Parse(time.RFC3339Nano, bv)
			if aerr == nil && berr == nil {
				return at.Compare(bt)
			}
		}
		return cmp.Compare(av, bv)
	}
	return 0
}

func matches(doc map[string]any, filters []model.Filter) bool {
	for _, f := range filters {
		value := doc[f.Field]
		switch f.Op {
		case model.FilterContains:
			items, _ := value.([]any)
			if !slices.ContainsFunc(items, func(item any) bool { return reflect.DeepEqual(item, f.Value) }) {
				return false
			}
		default:
			if !reflect.DeepEqual(value, f.Value) {
				return false
			}
		}
	}
	return true
}

func normalizeFilters(filters []model.Filter) ([]model.Filter, error) {
	out := make([]model.Filter, len(filters))
	for i, f := range filters {
		value, err := normalize(f.Value)
		if err != nil {
			return nil, err
		}
		out[i] = model.Filter{Field: f.Field, Op: f.Op, Value: value}
	}
	return out, nil
}

// normalize turns v into the shape encoding/json decodes into any, so Go
// values compare equal to stored ones regardless of their named types.
// Numbers stay json.Number to keep snowflake ids exact.
func normalize(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("memstore: encode value: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("memstore: decode value: %w", err)
	}
	return out, nil
}

func encode[T any](doc *T) (map[string]any, error) {
	v, err := normalize(doc)
	if err != nil {
		return nil, err
	}
	fields, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("memstore: %T does not encode to an object", doc)
	}
	return fields, nil
}

func decode[T any](fields map[string]any) (T, error) {
	var out T
	raw, err := json.Marshal(fields)
	if err != nil {
		return out, fmt.Errorf("memstore: encode document: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("memstore: decode document: %w", err)
	}
	return out, nil
}

func compareNumbers(a, b json.Number) int {
	ai, aerr := a.Int64()
	bi, berr := b.Int64()
	if aerr == nil && berr == nil {
		return cmp.Compare(ai, bi)
	}
	af, _ := a.Float64()
	bf, _ := b.Float64()
	return cmp.Compare(af, bf)
}

func docID(doc map[string]any) int64 {
	n, _ := doc[store.FieldID].(json.Number)
	id, _ := n.Int64()
	return id
}

func uniqueKey(v any) string {
	return fmt.Sprint(v)
}
