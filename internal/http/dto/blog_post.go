package dto

import (
	"time"

	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/service"
)

type CreateBlogPostRequest struct {
	Title         string     `json:"title" binding:"required,min=1,max=200" jsonschema:"minLength=1,maxLength=200"`
	Slug          string     `json:"slug,omitempty" binding:"omitempty,slug" jsonschema:"maxLength=120"`
	Excerpt       string     `json:"excerpt,omitempty" binding:"max=500" jsonschema:"maxLength=500"`
	Content       string     `json:"content" binding:"required" jsonschema:"minLength=1"`
	Author        string     `json:"author" binding:"required,max=120" jsonschema:"minLength=1,maxLength=120"`
	CoverImageURL *string    `json:"coverImageUrl,omitempty" binding:"omitempty,url|eq=,max=2048" jsonschema:"format=uri"`
	Tags          []string   `json:"tags,omitempty" binding:"omitempty,max=20,dive,min=1,max=40" jsonschema:"maxItems=20,uniqueItems=true"`
	Status        string     `json:"status,omitempty" binding:"omitempty,oneof=draft published archived" jsonschema:"enum=draft,enum=published,enum=archived,default=draft"`
	PublishedAt   *time.Time `json:"publishedAt,omitempty"`
}

func (r CreateBlogPostRequest) ToModel() *model.BlogPost {
	return &model.BlogPost{
		Title:         r.Title,
		Slug:          r.Slug,
		Excerpt:       r.Excerpt,
		Content:       r.Content,
		Author:        r.Author,
		CoverImageURL: r.CoverImageURL,
		Tags:          r.Tags,
		Status:        model.PostStatus(r.Status),
		PublishedAt:   r.PublishedAt,
	}
}

// UpdateBlogPostRequest is a partial update; an empty coverImageUrl clears it.
type UpdateBlogPostRequest struct {
	Title         *string    `json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Slug          *string    `json:"slug,omitempty" binding:"omitempty,slug"`
	Excerpt       *string    `json:"excerpt,omitempty" binding:"omitempty,max=500"`
	Content       *string    `json:"content,omitempty" binding:"omitempty,min=1"`
	Author        *string    `json:"author,omitempty" binding:"omitempty,min=1,max=120"`
	CoverImageURL *string    `json:"coverImageUrl,omitempty" binding:"omitempty,url|eq=,max=2048"`
	Tags          *[]string  `json:"tags,omitempty" binding:"omitempty,max=20,dive,min=1,max=40"`
	Status        *string    `json:"status,omitempty" binding:"omitempty,oneof=draft published archived"`
	PublishedAt   *time.Time `json:"publishedAt,omitempty"`
}

func (r UpdateBlogPostRequest) ToUpdate() service.BlogPostUpdate {
	return service.BlogPostUpdate{
		Title:         r.Title,
		Slug:          r.Slug,
		Excerpt:       r.Excerpt,
		Content:       r.Content,
		Author:        r.Author,
		CoverImageURL: r.CoverImageURL,
		Tags:          r.Tags,
		Status:        enumPtr[model.PostStatus](r.Status),
		PublishedAt:   r.PublishedAt,
	}
}

type BlogPostResponse struct {
	ID            int64      `json:"id,string"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content"`
	Author        string     `json:"author"`
	CoverImageURL *string    `json:"coverImageUrl"`
	Tags          []string   `json:"tags"`
	Status        string     `json:"status"`
	PublishedAt   *time.Time `json:"publishedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func ToBlogPostResponse(p *model.BlogPost) BlogPostResponse {
	return BlogPostResponse{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.Excerpt,
		Content:       p.Content,
		Author:        p.Author,
		CoverImageURL: p.CoverImageURL,
		Tags:          nonNil(p.Tags),
		Status:        string(p.Status),
		PublishedAt:   p.PublishedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
