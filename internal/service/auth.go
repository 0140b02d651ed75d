package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"basegraph.app/cms/common/logger"
	"basegraph.app/cms/internal/auth"
	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/store"
)

// dummyHash is compared against when the email is unknown so both failure
// paths spend the same bcrypt time.
var dummyHash = sync.OnceValue(func() string {
	hash, _ := auth.HashPassword("unknown-account-placeholder")
	return hash
})

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *model.User, error)
	Me(ctx context.Context, userID int64) (*model.User, error)
}

type authService struct {
	users  store.UserStore
	tokens *auth.TokenService
}

func NewAuthService(users store.UserStore, tokens *auth.TokenService) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	sc := logger.StartSpan(ctx, "service.auth.login")
	defer sc.End()
	ctx = logger.WithLogFields(sc.Context(), logger.LogFields{Component: "cms.service.auth"})

	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.ErrorContext(ctx, "failed to load user for login", "error", err)
			return "", nil, fmt.Errorf("loading user: %w", err)
		}
		_ = auth.CheckPassword(dummyHash(), password)
		slog.InfoContext(ctx, "login rejected", "email", email, "reason", "unknown email")
		return "", nil, ErrInvalidCredentials
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			slog.ErrorContext(ctx, "failed to check password", "error", err, "user_id", user.ID)
		}
		slog.InfoContext(ctx, "login rejected", "email", email, "reason", "wrong password")
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(auth.Claims{UserID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		return "", nil, err
	}

	slog.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return token, user, nil
}

func (s *authService) Me(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, storeError("getting current user", err)
	}
	return user, nil
}
