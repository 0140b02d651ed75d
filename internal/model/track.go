package model

import "time"

type Track struct {
	ID               int64     `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	Slug             string    `db:"slug" json:"slug"`
	Description      string    `db:"description" json:"description"`
	Skills           []string  `db:"skills" json:"skills"`
	LearningOutcomes []string  `db:"learning_outcomes" json:"learning_outcomes"`
	Icon             *string   `db:"icon" json:"icon"`
	IsActive         bool      `db:"is_active" json:"is_active"`
	SortOrder        int       `db:"sort_order" json:"sort_order"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}
