package service

import (
	"basegraph.app/cms/internal/model"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListQuery is the caller-facing page request. Sort uses the JSON field
// name; each service maps it onto its whitelist of stored fields.
type ListQuery struct {
	Page  int
	Limit int
	Sort  string
	Order model.SortOrder
	// Staff lifts the public visibility filter.
	Staff bool
}

// listing declares how a resource may be sorted.
type listing struct {
	sortable     map[string]string
	defaultSort  string
	defaultOrder model.SortOrder
}

func (l listing) params(q ListQuery, filters []model.Filter) (model.ListParams, error) {
	params := model.ListParams{
		Page:    q.Page,
		Limit:   q.Limit,
		Sort:    l.defaultSort,
		Order:   l.defaultOrder,
		Filters: filters,
	}
	if params.Page == 0 {
		params.Page = DefaultPage
	}
	if params.Limit == 0 {
		params.Limit = DefaultLimit
	}
	if params.Page < 1 {
		return model.ListParams{}, invalidField("page", "must be at least 1")
	}
	if params.Limit < 1 || params.Limit > MaxLimit {
		return model.ListParams{}, invalidField("limit", "must be between 1 and 100")
	}

	if q.Sort != "" {
		field, ok := l.sortable[q.Sort]
		if !ok {
			return model.ListParams{}, &FieldError{Err: ErrInvalidSort, Field: "sort", Reason: "cannot sort by " + q.Sort}
		}
		params.Sort = field
	}
	switch q.Order {
	case "":
	case model.SortAsc, model.SortDesc:
		params.Order = q.Order
	default:
		return model.ListParams{}, invalidField("order", "must be asc or desc")
	}

	return params, nil
}

// sortFields builds a whitelist keyed by JSON name.
func sortFields(stored ...string) map[string]string {
	m := make(map[string]string, len(stored))
	for _, field := range stored {
		m[wireName(field)] = field
	}
	return m
}
