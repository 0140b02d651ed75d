package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/cms/internal/auth"
	"basegraph.app/cms/internal/http/dto"
	"basegraph.app/cms/internal/http/handler"
	"basegraph.app/cms/internal/http/middleware"
	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/service"
)

var _ = Describe("AuthHandler", func() {
	var (
		router *gin.Engine
		svc    *mockAuthService
		tokens *auth.TokenService
	)

	BeforeEach(func() {
		router = gin.New()
		svc = &mockAuthService{}
		tokens = auth.NewTokenService(auth.TokenConfig{
			Secret: []byte("handler-test-secret-0123456789abc"),
			Issuer: "cms",
			TTL:    time.Hour,
		})
		h := handler.NewAuthHandler(svc, tokens.TTL())
		router.POST("/login", middleware.Validate[dto.LoginRequest](middleware.Body), h.Login)
		router.GET("/me", middleware.Authenticate(tokens), h.Me)
	})

	login := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("returns the token and the user without its hash", func() {
		svc.loginFn = func(_ context.Context, email, password string) (string, *model.User, error) {
			Expect(email).To(Equal("admin@example.com"))
			Expect(password).To(Equal("hunter22"))
			return "signed.jwt.value", &model.User{ID: 7, Email: email, PasswordHash: "$2a$secret", Role: model.RoleAdmin}, nil
		}

		w := login(`{"email":"admin@example.com","password":"hunter22"}`)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).NotTo(ContainSubstring("$2a$secret"))

		var resp dto.DataResponse[dto.LoginResponse]
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Data.Token).To(Equal("signed.jwt.value"))
		Expect(resp.Data.ExpiresIn).To(Equal(int64(3600)))
		Expect(resp.Data.User.Role).To(Equal("admin"))
	})

	It("returns 401 and no token for bad credentials", func() {
		w := login(`{"email":"admin@example.com","password":"wrong"}`)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(w.Body.String()).NotTo(ContainSubstring("token\""))

		var resp dto.ErrorResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Error.Code).To(Equal(dto.CodeAuthentication))
	})

	It("validates the login body", func() {
		w := login(`{"email":"not-an-email"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	Describe("Me", func() {
		me := func(token string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			return w
		}

		It("returns the current user", func() {
			svc.meFn = func(_ context.Context, id int64) (*model.User, error) {
				return &model.User{ID: id, Email: "a@b.co", Role: model.RoleEditor}, nil
			}
			token, err := tokens.Issue(auth.Claims{UserID: 11, Email: "a@b.co", Role: model.RoleEditor})
			Expect(err).NotTo(HaveOccurred())

			w := me(token)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"id":"11"`))
		})

		It("returns 401 once the account is gone", func() {
			svc.meFn = func(context.Context, int64) (*model.User, error) {
				return nil, service.ErrNotFound
			}
			token, err := tokens.Issue(auth.Claims{UserID: 11, Role: model.RoleEditor})
			Expect(err).NotTo(HaveOccurred())

			Expect(me(token).Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
