package store

import (
	"context"
	"time"

	"basegraph.app/cms/internal/model"
)

var BlogPostCollection = Collection[model.BlogPost]{
	Name: "blog_posts",
	Fields: []string{
		"title", "slug", "excerpt", "content", "author", "cover_image_url",
		"tags", "status", "published_at",
	},
	Unique:      []string{"slug"},
	ArrayFields: []string{"tags"},
	TimeFields:  []string{"published_at"},
	ID:          func(p *model.BlogPost) int64 { return p.ID },
	Values: func(p *model.BlogPost) []any {
		return []any{
			p.Title, p.Slug, p.Excerpt, p.Content, p.Author, p.CoverImageURL,
			nonNil(p.Tags), p.Status, p.PublishedAt,
		}
	},
	Stamp: func(p *model.BlogPost, createdAt, updatedAt time.Time) {
		p.CreatedAt, p.UpdatedAt = createdAt, updatedAt
	},
}

type blogPostStore struct {
	*table[model.BlogPost]
}

func newBlogPostStore(db DBTX) BlogPostStore {
	return &blogPostStore{table: newTable(db, BlogPostCollection)}
}

func (s *blogPostStore) GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	return s.getBy(ctx, "slug", slug)
}

// nonNil keeps NOT NULL array columns from receiving SQL NULL.
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
