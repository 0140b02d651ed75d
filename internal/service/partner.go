package service

import (
	"context"
	"strings"

	"basegraph.app/cms/common/id"
	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/queue"
	"basegraph.app/cms/internal/store"
)

type PartnerUpdate struct {
	Name        *string
	Slug        *string
	LogoURL     *string
	WebsiteURL  *string
	Description *string
	IsActive    *bool
	SortOrder   *int
}

type PartnerService interface {
	List(ctx context.Context, q ListQuery) (model.Page[model.Partner], error)
	Get(ctx context.Context, id int64, staff bool) (*model.Partner, error)
	GetBySlug(ctx context.Context, slug string, staff bool) (*model.Partner, error)
	Create(ctx context.Context, partner *model.Partner) error
	Update(ctx context.Context, id int64, in PartnerUpdate) (*model.Partner, error)
	Delete(ctx context.Context, id int64) error
}

type partnerService struct {
	store store.PartnerStore
	*collection[model.Partner]
}

func NewPartnerService(partners store.PartnerStore, events queue.Publisher) PartnerService {
	return &partnerService{
		store: partners,
		collection: &collection[model.Partner]{
			resource: model.ResourcePartners,
			repo:     partners,
			events:   events,
			listing: listing{
				sortable:     sortFields("sort_order", "name", "created_at"),
				defaultSort:  "sort_order",
				defaultOrder: model.SortAsc,
			},
			id: func(p *model.Partner) int64 { return p.ID },
		},
	}
}

func partnerVisible(staff bool) func(*model.Partner) bool {
	return func(p *model.Partner) bool { return staff || p.IsActive }
}

func (s *partnerService) List(ctx context.Context, q ListQuery) (model.Page[model.Partner], error) {
	var filters []model.Filter
	if !q.Staff {
		filters = append(filters, model.Eq("is_active", true))
	}
	return s.list(ctx, q, filters)
}

func (s *partnerService) Get(ctx context.Context, id int64, staff bool) (*model.Partner, error) {
	return s.get(ctx, id, partnerVisible(staff))
}

func (s *partnerService) GetBySlug(ctx context.Context, slug string, staff bool) (*model.Partner, error) {
	partner, err := s.store.GetBySlug(ctx, slug)
	if err != nil {
		return nil, storeError("getting partner by slug", err)
	}
	if !partnerVisible(staff)(partner) {
		return nil, ErrNotFound
	}
	return partner, nil
}

func (s *partnerService) Create(ctx context.Context, partner *model.Partner) error {
	slug, err := resolveSlug(partner.Slug, partner.Name)
	if err != nil {
		return err
	}

	partner.ID = id.New()
	partner.Name = strings.TrimSpace(partner.Name)
	partner.Slug = slug
	partner.WebsiteURL = emptyToNil(partner.WebsiteURL)

	return s.create(ctx, partner)
}

func (s *partnerService) Update(ctx context.Context, id int64, in PartnerUpdate) (*model.Partner, error) {
	patch := model.Patch{}
	if in.Name != nil {
		patch["name"] = strings.TrimSpace(*in.Name)
	}
	set(patch, "logo_url", in.LogoURL)
	setNullable(patch, "website_url", in.WebsiteURL)
	set(patch, "description", in.Description)
	set(patch, "is_active", in.IsActive)
	set(patch, "sort_order", in.SortOrder)
	if in.Slug != nil {
		slug, err := resolveSlug(*in.Slug, "")
		if err != nil {
			return nil, err
		}
		patch["slug"] = slug
	}

	return s.update(ctx, id, patch)
}

func (s *partnerService) Delete(ctx context.Context, id int64) error {
	return s.delete(ctx, id)
}
