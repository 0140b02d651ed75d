package model

import "time"

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusArchived  PostStatus = "archived"
)

// MaxExcerptLength is shared by the request schema and the table check constraint.
const MaxExcerptLength = 500

type BlogPost struct {
	ID            int64      `db:"id" json:"id"`
	Title         string     `db:"title" json:"title"`
	Slug          string     `db:"slug" json:"slug"`
	Excerpt       string     `db:"excerpt" json:"excerpt"`
	Content       string     `db:"content" json:"content"`
	Author        string     `db:"author" json:"author"`
	CoverImageURL *string    `db:"cover_image_url" json:"cover_image_url"`
	Tags          []string   `db:"tags" json:"tags"`
	Status        PostStatus `db:"status" json:"status"`
	PublishedAt   *time.Time `db:"published_at" json:"published_at"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

func (p *BlogPost) IsPublished() bool {
	return p.Status == PostStatusPublished
}
