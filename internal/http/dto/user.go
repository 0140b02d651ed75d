package dto

import (
	"time"

	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/service"
)

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email,max=255" jsonschema:"format=email,maxLength=255"`
	Password string `json:"password" binding:"required,min=8,max=72" jsonschema:"minLength=8,maxLength=72"`
	Name     string `json:"name" binding:"required,min=1,max=120" jsonschema:"minLength=1,maxLength=120"`
	Role     string `json:"role" binding:"required,oneof=admin editor" jsonschema:"enum=admin,enum=editor"`
}

func (r CreateUserRequest) ToCreate() service.UserCreate {
	return service.UserCreate{
		Email:    r.Email,
		Password: r.Password,
		Name:     r.Name,
		Role:     model.Role(r.Role),
	}
}

type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty" binding:"omitempty,email,max=255"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=8,max=72"`
	Name     *string `json:"name,omitempty" binding:"omitempty,min=1,max=120"`
	Role     *string `json:"role,omitempty" binding:"omitempty,oneof=admin editor"`
}

func (r UpdateUserRequest) ToUpdate() service.UserUpdate {
	return service.UserUpdate{
		Email:    r.Email,
		Password: r.Password,
		Name:     r.Name,
		Role:     enumPtr[model.Role](r.Role),
	}
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID        int64     `json:"id,string"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=72"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expiresIn"`
	User      UserResponse `json:"user"`
}

type MeResponse struct {
	User UserResponse `json:"user"`
}
