package handler

import (
	"context"
	"errors"
	"strconv"

	"basegraph.app/cms/common"
	"basegraph.app/cms/internal/service"
)

// lookup resolves a path key that may be an id or a slug. Numeric keys are
// tried as ids first since slugs may also be all digits.
func lookup[T any](
	ctx context.Context,
	key string,
	byID func(ctx context.Context, id int64) (*T, error),
	bySlug func(ctx context.Context, slug string) (*T, error),
) (*T, error) {
	if id, err := strconv.ParseInt(key, 10, 64); err == nil && id > 0 {
		doc, err := byID(ctx, id)
		if err == nil || !errors.Is(err, service.ErrNotFound) || bySlug == nil {
			return doc, err
		}
	}
	if bySlug == nil || !common.IsSlug(key) {
		return nil, service.ErrNotFound
	}
	return bySlug(ctx, key)
}
