package model

import "time"

type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusOngoing   EventStatus = "ongoing"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

type Event struct {
	ID              int64       `db:"id" json:"id"`
	Title           string      `db:"title" json:"title"`
	Slug            string      `db:"slug" json:"slug"`
	Description     string      `db:"description" json:"description"`
	Location        string      `db:"location" json:"location"`
	StartsAt        time.Time   `db:"starts_at" json:"starts_at"`
	EndsAt          *time.Time  `db:"ends_at" json:"ends_at"`
	Status          EventStatus `db:"status" json:"status"`
	RegistrationURL *string     `db:"registration_url" json:"registration_url"`
	ImageURL        *string     `db:"image_url" json:"image_url"`
	IsPublished     bool        `db:"is_published" json:"is_published"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at" json:"updated_at"`
}
