package model

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

type FilterOp string

const (
	// FilterEq matches documents whose field equals Value.
	FilterEq FilterOp = "eq"
	// FilterContains matches documents whose array field holds Value.
	FilterContains FilterOp = "contains"
)

// Filter is a single condition on a stored field name (snake_case).
type Filter struct {
	Field string
	Op    FilterOp
	Value any
}

func Eq(field string, value any) Filter {
	return Filter{Field: field, Op: FilterEq, Value: value}
}

func Contains(field string, value any) Filter {
	return Filter{Field: field, Op: FilterContains, Value: value}
}

// ListParams is a validated page request. Sort refers to a stored field
// name that the resource has whitelisted.
type ListParams struct {
	Page    int
	Limit   int
	Sort    string
	Order   SortOrder
	Filters []Filter
}

// Offset is the number of documents skipped before this page.
func (p ListParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Patch maps stored field names to their new values. Fields absent from
// the map are left untouched by Update.
type Patch map[string]any

// Page is one slice of a listing plus the totals needed for navigation.
type Page[T any] struct {
	Items      []T
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

func NewPage[T any](items []T, params ListParams, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: TotalPages(total, params.Limit),
	}
}

// TotalPages is ceil(total/limit), and 0 for an empty collection.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
