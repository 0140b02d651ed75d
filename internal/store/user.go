package store

import (
	"context"
	"strings"
	"time"

	"basegraph.app/cms/internal/model"
)

// UserCollection stores accounts; email is unique and kept lowercase.
var UserCollection = Collection[model.User]{
	Name:   "users",
	Fields: []string{"email", "password_hash", "name", "role"},
	Unique: []string{"email"},
	ID:     func(u *model.User) int64 { return u.ID },
	Values: func(u *model.User) []any {
		return []any{u.Email, u.PasswordHash, u.Name, u.Role}
	},
	Stamp: func(u *model.User, createdAt, updatedAt time.Time) {
		u.CreatedAt, u.UpdatedAt = createdAt, updatedAt
	},
}

type userStore struct {
	*table[model.User]
}

func newUserStore(db DBTX) UserStore {
	return &userStore{table: newTable(db, UserCollection)}
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getBy(ctx, "email", strings.ToLower(email))
}
