package model

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

// Roles lists every role the system issues tokens for.
var Roles = []Role{RoleAdmin, RoleEditor}

func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// IsStaff reports whether the role may see unpublished content.
func (r Role) IsStaff() bool {
	return r.Valid()
}

// User is the persisted account. PasswordHash is tagged for storage
// encoders only; HTTP responses go through dto.ToUserResponse.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"password_hash"`
	Name         string    `db:"name" json:"name"`
	Role         Role      `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
