package service

import (
	"context"
	"time"

	"basegraph.app/cms/common/id"
	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/queue"
	"basegraph.app/cms/internal/store"
)

type BlogPostQuery struct {
	ListQuery
	Tag    string
	Status model.PostStatus
}

type BlogPostUpdate struct {
	Title         *string
	Slug          *string
	Excerpt       *string
	Content       *string
	Author        *string
	CoverImageURL *string
	Tags          *[]string
	Status        *model.PostStatus
	PublishedAt   *time.Time
}

type BlogPostService interface {
	List(ctx context.Context, q BlogPostQuery) (model.Page[model.BlogPost], error)
	Get(ctx context.Context, id int64, staff bool) (*model.BlogPost, error)
	GetBySlug(ctx context.Context, slug string, staff bool) (*model.BlogPost, error)
	Create(ctx context.Context, post *model.BlogPost) error
	Update(ctx context.Context, id int64, in BlogPostUpdate) (*model.BlogPost, error)
	Delete(ctx context.Context, id int64) error
}

type blogPostService struct {
	store store.BlogPostStore
	*collection[model.BlogPost]
}

func NewBlogPostService(blogPosts store.BlogPostStore, events queue.Publisher) BlogPostService {
	return &blogPostService{
		store: blogPosts,
		collection: &collection[model.BlogPost]{
			resource: model.ResourceBlogPosts,
			repo:     blogPosts,
			events:   events,
			listing: listing{
				sortable:     sortFields("published_at", "created_at", "updated_at", "title"),
				defaultSort:  "published_at",
				defaultOrder: model.SortDesc,
			},
			id: func(p *model.BlogPost) int64 { return p.ID },
		},
	}
}

func postVisible(staff bool) func(*model.BlogPost) bool {
	return func(p *model.BlogPost) bool { return staff || p.IsPublished() }
}

func (s *blogPostService) List(ctx context.Context, q BlogPostQuery) (model.Page[model.BlogPost], error) {
	var filters []model.Filter
	switch {
	case !q.Staff:
		filters = append(filters, model.Eq("status", model.PostStatusPublished))
	case q.Status != "":
		filters = append(filters, model.Eq("status", q.Status))
	}
	if tags := normalizeTags([]string{q.Tag}); len(tags) == 1 {
		filters = append(filters, model.Contains("tags", tags[0]))
	}
	return s.list(ctx, q.ListQuery, filters)
}

func (s *blogPostService) Get(ctx context.Context, id int64, staff bool) (*model.BlogPost, error) {
	return s.get(ctx, id, postVisible(staff))
}

func (s *blogPostService) GetBySlug(ctx context.Context, slug string, staff bool) (*model.BlogPost, error) {
	post, err := s.store.GetBySlug(ctx, slug)
	if err != nil {
		return nil, storeError("getting blog post by slug", err)
	}
	if !postVisible(staff)(post) {
		return nil, ErrNotFound
	}
	return post, nil
}

func (s *blogPostService) Create(ctx context.Context, post *model.BlogPost) error {
	slug, err := resolveSlug(post.Slug, post.Title)
	if err != nil {
		return err
	}

	post.ID = id.New()
	post.Slug = slug
	post.Tags = normalizeTags(post.Tags)
	post.CoverImageURL = emptyToNil(post.CoverImageURL)
	if post.Status == "" {
		post.Status = model.PostStatusDraft
	}
	if post.IsPublished() && post.PublishedAt == nil {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	return s.create(ctx, post)
}

func (s *blogPostService) Update(ctx context.Context, id int64, in BlogPostUpdate) (*model.BlogPost, error) {
	patch := model.Patch{}
	set(patch, "title", in.Title)
	set(patch, "excerpt", in.Excerpt)
	set(patch, "content", in.Content)
	set(patch, "author", in.Author)
	setNullable(patch, "cover_image_url", in.CoverImageURL)
	set(patch, "status", in.Status)
	set(patch, "published_at", in.PublishedAt)
	if in.Slug != nil {
		slug, err := resolveSlug(*in.Slug, "")
		if err != nil {
			return nil, err
		}
		patch["slug"] = slug
	}
	if in.Tags != nil {
		patch["tags"] = normalizeTags(*in.Tags)
	}

	// published_at is stamped the first time a post becomes published.
	if in.Status != nil && *in.Status == model.PostStatusPublished && in.PublishedAt == nil {
		current, err := s.store.GetByID(ctx, id)
		if err != nil {
			return nil, storeError("getting blog post", err)
		}
		if current.PublishedAt == nil {
			patch["published_at"] = time.Now().UTC()
		}
	}

	return s.update(ctx, id, patch)
}

func (s *blogPostService) Delete(ctx context.Context, id int64) error {
	return s.delete(ctx, id)
}
