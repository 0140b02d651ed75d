package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"basegraph.app/cms/common/id"
	"basegraph.app/cms/internal/auth"
	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/queue"
	"basegraph.app/cms/internal/store"
)

type UserCreate struct {
	Email    string
	Password string
	Name     string
	Role     model.Role
}

type UserUpdate struct {
	Email    *string
	Password *string
	Name     *string
	Role     *model.Role
}

type UserService interface {
	List(ctx context.Context, q ListQuery) (model.Page[model.User], error)
	Get(ctx context.Context, id int64) (*model.User, error)
	Create(ctx context.Context, in UserCreate) (*model.User, error)
	Update(ctx context.Context, id int64, in UserUpdate) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	*collection[model.User]
}

func NewUserService(users store.UserStore, events queue.Publisher) UserService {
	return &userService{
		collection: &collection[model.User]{
			resource: model.ResourceUsers,
			repo:     users,
			events:   events,
			listing: listing{
				sortable:     sortFields("created_at", "email", "name"),
				defaultSort:  "created_at",
				defaultOrder: model.SortDesc,
			},
			id: func(u *model.User) int64 { return u.ID },
		},
	}
}

func (s *userService) List(ctx context.Context, q ListQuery) (model.Page[model.User], error) {
	return s.list(ctx, q, nil)
}

func (s *userService) Get(ctx context.Context, id int64) (*model.User, error) {
	return s.get(ctx, id, nil)
}

func (s *userService) Create(ctx context.Context, in UserCreate) (*model.User, error) {
	if !in.Role.Valid() {
		return nil, invalidField("role", "must be admin or editor")
	}
	if len(in.Password) < auth.MinPasswordLength {
		return nil, invalidField("password", fmt.Sprintf("must be at least %d characters", auth.MinPasswordLength))
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           id.New(),
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		Role:         in.Role,
	}
	if err := s.create(ctx, user); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "user created", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (s *userService) Update(ctx context.Context, id int64, in UserUpdate) (*model.User, error) {
	patch := model.Patch{}
	if in.Email != nil {
		patch["email"] = normalizeEmail(*in.Email)
	}
	if in.Name != nil {
		patch["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, invalidField("role", "must be admin or editor")
		}
		patch["role"] = *in.Role
	}
	if in.Password != nil {
		if len(*in.Password) < auth.MinPasswordLength {
			return nil, invalidField("password", fmt.Sprintf("must be at least %d characters", auth.MinPasswordLength))
		}
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		patch["password_hash"] = hash
	}

	return s.update(ctx, id, patch)
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	return s.delete(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
