package store

import (
	"context"
	"time"

	"basegraph.app/cms/internal/model"
)

var PartnerCollection = Collection[model.Partner]{
	Name: "partners",
	Fields: []string{
		"name", "slug", "logo_url", "website_url", "description", "is_active", "sort_order",
	},
	Unique: []string{"name", "slug"},
	ID:     func(p *model.Partner) int64 { return p.ID },
	Values: func(p *model.Partner) []any {
		return []any{p.Name, p.Slug, p.LogoURL, p.WebsiteURL, p.Description, p.IsActive, p.SortOrder}
	},
	Stamp: func(p *model.Partner, createdAt, updatedAt time.Time) {
		p.CreatedAt, p.UpdatedAt = createdAt, updatedAt
	},
}

type partnerStore struct {
	*table[model.Partner]
}

func newPartnerStore(db DBTX) PartnerStore {
	return &partnerStore{table: newTable(db, PartnerCollection)}
}

func (s *partnerStore) GetBySlug(ctx context.Context, slug string) (*model.Partner, error) {
	return s.getBy(ctx, "slug", slug)
}
