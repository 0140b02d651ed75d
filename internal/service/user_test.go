package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/cms/common/id"
	"basegraph.app/cms/internal/auth"
	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/service"
	"basegraph.app/cms/internal/store"
)

var _ = Describe("UserService", func() {
	var (
		svc       service.UserService
		mockStore *mockUserStore
		ctx       context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		mockStore = &mockUserStore{}
		Expect(id.Init(1)).To(Succeed())
		svc = service.NewUserService(mockStore, &recordingPublisher{})
	})

	Describe("Create", func() {
		It("should hash the password and lowercase the email", func() {
			var captured *model.User
			mockStore.createFn = func(_ context.Context, u *model.User) error {
				captured = u
				return nil
			}

			user, err := svc.Create(ctx, service.UserCreate{
				Email: " Admin@Example.COM ", Password: "s3cret-pass", Name: "Admin", Role: model.RoleAdmin,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).NotTo(BeZero())
			Expect(captured.Email).To(Equal("admin@example.com"))
			Expect(captured.PasswordHash).NotTo(Equal("s3cret-pass"))
			Expect(auth.CheckPassword(captured.PasswordHash, "s3cret-pass")).To(Succeed())
		})

		It("should reject unknown roles", func() {
			_, err := svc.Create(ctx, service.UserCreate{Email: "a@b.co", Password: "12345678", Role: "owner"})
			Expect(err).To(MatchError(service.ErrInvalidInput))
		})

		It("should reject short passwords", func() {
			_, err := svc.Create(ctx, service.UserCreate{Email: "a@b.co", Password: "short", Role: model.RoleEditor})
			Expect(err).To(MatchError(service.ErrInvalidInput))
		})

		It("should surface email collisions as conflicts", func() {
			mockStore.createFn = func(context.Context, *model.User) error {
				return &store.ConflictError{Field: "email"}
			}
			_, err := svc.Create(ctx, service.UserCreate{Email: "a@b.co", Password: "12345678", Role: model.RoleEditor})
			Expect(err).To(MatchError(service.ErrConflict))
		})
	})

	Describe("Update", func() {
		It("should replace the hash when a password is given", func() {
			var patch model.Patch
			mockStore.updateFn = func(_ context.Context, _ int64, p model.Patch) (*model.User, error) {
				patch = p
				return &model.User{ID: 1}, nil
			}

			password := "another-pass"
			_, err := svc.Update(ctx, 1, service.UserUpdate{Password: &password})
			Expect(err).NotTo(HaveOccurred())
			Expect(patch).To(HaveKey("password_hash"))
			Expect(patch).NotTo(HaveKey("password"))
		})
	})
})

var _ = Describe("AuthService", func() {
	var (
		svc       service.AuthService
		mockStore *mockUserStore
		tokens    *auth.TokenService
		ctx       context.Context
		hash      string
	)

	BeforeEach(func() {
		ctx = context.Background()
		mockStore = &mockUserStore{}
		tokens = auth.NewTokenService(auth.TokenConfig{
			Secret: []byte("test-secret-that-is-long-enough-123"),
			Issuer: "cms",
			TTL:    time.Hour,
		})
		svc = service.NewAuthService(mockStore, tokens)

		var err error
		hash, err = auth.HashPassword("correct-password")
		Expect(err).NotTo(HaveOccurred())

		mockStore.getByEmailFn = func(_ context.Context, email string) (*model.User, error) {
			if email == "admin@example.com" {
				return &model.User{ID: 7, Email: email, PasswordHash: hash, Role: model.RoleAdmin}, nil
			}
			return nil, store.ErrNotFound
		}
	})

	It("should issue a token for valid credentials", func() {
		token, user, err := svc.Login(ctx, "Admin@Example.com", "correct-password")
		Expect(err).NotTo(HaveOccurred())
		Expect(user.ID).To(Equal(int64(7)))

		claims, err := tokens.Verify(token)
		Expect(err).NotTo(HaveOccurred())
		Expect(claims.UserID).To(Equal(int64(7)))
		Expect(claims.Role).To(Equal(model.RoleAdmin))
	})

	It("should reject a wrong password", func() {
		token, user, err := svc.Login(ctx, "admin@example.com", "wrong-password")
		Expect(err).To(MatchError(service.ErrInvalidCredentials))
		Expect(token).To(BeEmpty())
		Expect(user).To(BeNil())
	})

	It("should reject unknown emails with the same error", func() {
		_, _, err := svc.Login(ctx, "nobody@example.com", "correct-password")
		Expect(err).To(MatchError(service.ErrInvalidCredentials))
	})

	It("should propagate store failures", func() {
		mockStore.getByEmailFn = func(context.Context, string) (*model.User, error) {
			return nil, errors.New("db down")
		}
		_, _, err := svc.Login(ctx, "admin@example.com", "correct-password")
		Expect(err).To(MatchError(ContainSubstring("db down")))
		Expect(err).NotTo(MatchError(service.ErrInvalidCredentials))
	})

	It("should resolve the current user", func() {
		mockStore.getByIDFn = func(_ context.Context, id int64) (*model.User, error) {
			if id == 7 {
				return &model.User{ID: 7}, nil
			}
			return nil, store.ErrNotFound
		}
		user, err := svc.Me(ctx, 7)
		Expect(err).NotTo(HaveOccurred())
		Expect(user.ID).To(Equal(int64(7)))

		_, err = svc.Me(ctx, 8)
		Expect(err).To(MatchError(service.ErrNotFound))
	})
})
