package model

import "time"

// MaxQuoteLength is shared by the request schema and the table check constraint.
const MaxQuoteLength = 500

// Story is a graduate testimonial. Track holds the track name as free
// text; it is not checked against the tracks collection.
type Story struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Role        string    `db:"role" json:"role"`
	Track       string    `db:"track" json:"track"`
	Quote       string    `db:"quote" json:"quote"`
	Story       string    `db:"story" json:"story"`
	AvatarURL   *string   `db:"avatar_url" json:"avatar_url"`
	IsPublished bool      `db:"is_published" json:"is_published"`
	SortOrder   int       `db:"sort_order" json:"sort_order"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
