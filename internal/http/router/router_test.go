package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/cms/internal/auth"
	"basegraph.app/cms/internal/http/dto"
	"basegraph.app/cms/internal/http/router"
	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/ratelimit"
	"basegraph.app/cms/internal/service"
	"basegraph.app/cms/internal/store/memstore"
)

const adminPassword = "correct-horse-battery"

var _ = Describe("Routes", func() {
	var (
		engine   *gin.Engine
		stores   *memstore.Store
		services *service.Services
		tokens   *auth.TokenService
		ctx      context.Context
	)

	mount := func(loginLimiter ratelimit.Limiter) {
		var err error
		engine, err = router.NewEngine(nil)
		Expect(err).NotTo(HaveOccurred())
		router.SetupRoutes(engine, services, router.RouterConfig{
			Tokens:       tokens,
			TokenTTL:     tokens.TTL(),
			LoginLimiter: loginLimiter,
		})
	}

	serve := func(method, path, token string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	errorCode := func(w *httptest.ResponseRecorder) string {
		var resp dto.ErrorResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		return resp.Error.Code
	}

	login := func(email, password string) string {
		w := serve(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
		Expect(w.Code).To(Equal(http.StatusOK), w.Body.String())
		var resp dto.DataResponse[dto.LoginResponse]
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		return resp.Data.Token
	}

	BeforeEach(func() {
		ctx = context.Background()
		stores = memstore.New()
		tokens = auth.NewTokenService(auth.TokenConfig{
			Secret: []byte("router-test-secret-0123456789abcdef"),
			Issuer: "cms",
			TTL:    time.Hour,
		})
		services = service.NewServices(stores, tokens, nil)

		_, err := services.Users().Create(ctx, service.UserCreate{
			Email: "admin@example.com", Password: adminPassword, Name: "Admin", Role: model.RoleAdmin,
		})
		Expect(err).NotTo(HaveOccurred())
		_, err = services.Users().Create(ctx, service.UserCreate{
			Email: "editor@example.com", Password: adminPassword, Name: "Editor", Role: model.RoleEditor,
		})
		Expect(err).NotTo(HaveOccurred())

		mount(ratelimit.NewMemory(100, time.Minute))
	})

	It("serves health without auth", func() {
		w := serve(http.MethodGet, "/api/health", "", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"status":"ok"`))
	})

	It("paginates 25 published posts into 3 pages of 10", func() {
		for i := range 25 {
			err := services.BlogPosts().Create(ctx, &model.BlogPost{
				Title: fmt.Sprintf("Post %02d", i), Content: "body", Author: "Ada", Status: model.PostStatusPublished,
			})
			Expect(err).NotTo(HaveOccurred())
		}
		Expect(services.BlogPosts().Create(ctx, &model.BlogPost{Title: "Draft", Content: "x", Author: "Ada"})).To(Succeed())

		w := serve(http.MethodGet, "/api/blog-posts?page=1&limit=10", "", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		var resp dto.ListResponse[dto.BlogPostResponse]
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Data).To(HaveLen(10))
		Expect(resp.Pagination).To(Equal(dto.Pagination{Page: 1, Limit: 10, Total: 25, TotalPages: 3}))

		w = serve(http.MethodGet, "/api/blog-posts?page=3&limit=10", "", nil)
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Data).To(HaveLen(5))

		w = serve(http.MethodGet, "/api/blog-posts?limit=100", login("editor@example.com", adminPassword), nil)
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Pagination.Total).To(Equal(int64(26)))
	})

	It("keeps documents when DELETE has no bearer token", func() {
		track := &model.Track{Name: "Backend", Description: "Go", IsActive: true}
		Expect(services.Tracks().Create(ctx, track)).To(Succeed())

		w := serve(http.MethodDelete, fmt.Sprintf("/api/tracks/%d", track.ID), "", nil)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(errorCode(w)).To(Equal(dto.CodeAuthentication))

		_, err := stores.Tracks().GetByID(ctx, track.ID)
		Expect(err).NotTo(HaveOccurred())
	})

	It("forbids editors from writing", func() {
		w := serve(http.MethodPost, "/api/partners", login("editor@example.com", adminPassword), map[string]any{
			"name": "Acme", "logoUrl": "https://acme.test/logo.png",
		})
		Expect(w.Code).To(Equal(http.StatusForbidden))
		Expect(errorCode(w)).To(Equal(dto.CodeAuthorization))
	})

	It("changes only sortOrder on PUT", func() {
		track := &model.Track{Name: "Backend", Description: "Go", Skills: []string{"go"}, IsActive: true, SortOrder: 1}
		Expect(services.Tracks().Create(ctx, track)).To(Succeed())
		before, err := stores.Tracks().GetByID(ctx, track.ID)
		Expect(err).NotTo(HaveOccurred())

		w := serve(http.MethodPut, fmt.Sprintf("/api/tracks/%d", track.ID), login("admin@example.com", adminPassword),
			map[string]any{"sortOrder": 5})
		Expect(w.Code).To(Equal(http.StatusOK), w.Body.String())

		after, err := stores.Tracks().GetByID(ctx, track.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(after.SortOrder).To(Equal(5))
		Expect(after.Name).To(Equal(before.Name))
		Expect(after.Slug).To(Equal(before.Slug))
		Expect(after.Description).To(Equal(before.Description))
		Expect(after.Skills).To(Equal(before.Skills))
		Expect(after.IsActive).To(Equal(before.IsActive))
		Expect(after.CreatedAt.Equal(before.CreatedAt)).To(BeTrue())
	})

	It("rejects a wrong password with 401 and no token", func() {
		w := serve(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@example.com", "password": "nope-nope"})
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(errorCode(w)).To(Equal(dto.CodeAuthentication))
		Expect(w.Body.String()).NotTo(ContainSubstring(`"token"`))
	})

	It("returns 409 on slug collisions and leaves the store unchanged", func() {
		token := login("admin@example.com", adminPassword)
		body := map[string]any{"title": "Open House", "location": "HQ", "startsAt": "2025-09-01T09:00:00Z"}

		Expect(serve(http.MethodPost, "/api/events", token, body).Code).To(Equal(http.StatusCreated))
		w := serve(http.MethodPost, "/api/events", token, body)
		Expect(w.Code).To(Equal(http.StatusConflict))
		Expect(errorCode(w)).To(Equal(dto.CodeConflict))

		_, total, err := stores.Events().List(ctx, model.ListParams{Page: 1, Limit: 10, Sort: "starts_at", Order: model.SortAsc})
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(int64(1)))
	})

	It("returns 404 when updating a missing id without creating it", func() {
		w := serve(http.MethodPut, "/api/stories/123456789", login("admin@example.com", adminPassword),
			map[string]any{"name": "Ghost"})
		Expect(w.Code).To(Equal(http.StatusNotFound))

		_, total, err := stores.Stories().List(ctx, model.ListParams{Page: 1, Limit: 10, Sort: "sort_order", Order: model.SortAsc})
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(BeZero())
	})

	It("hides unpublished stories from the public but not from staff", func() {
		story := &model.Story{Name: "Sam", Role: "Engineer", Track: "Backend", Quote: "q", Story: "s"}
		Expect(services.Stories().Create(ctx, story)).To(Succeed())
		path := fmt.Sprintf("/api/stories/%d", story.ID)

		Expect(serve(http.MethodGet, path, "", nil).Code).To(Equal(http.StatusNotFound))
		Expect(serve(http.MethodGet, path, login("editor@example.com", adminPassword), nil).Code).To(Equal(http.StatusOK))
	})

	It("looks up posts by slug", func() {
		Expect(services.BlogPosts().Create(ctx, &model.BlogPost{
			Title: "Hello World", Content: "body", Author: "Ada", Status: model.PostStatusPublished,
		})).To(Succeed())

		w := serve(http.MethodGet, "/api/blog-posts/hello-world", "", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"title":"Hello World"`))
	})

	It("serves create schemas to admins only", func() {
		Expect(serve(http.MethodGet, "/api/schemas/tracks", "", nil).Code).To(Equal(http.StatusUnauthorized))

		token := login("admin@example.com", adminPassword)
		w := serve(http.MethodGet, "/api/schemas/tracks", token, nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"sortOrder"`))

		Expect(serve(http.MethodGet, "/api/schemas/widgets", token, nil).Code).To(Equal(http.StatusNotFound))
	})

	It("never exposes password hashes through the users API", func() {
		w := serve(http.MethodGet, "/api/users", login("admin@example.com", adminPassword), nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("editor@example.com"))
		Expect(w.Body.String()).NotTo(ContainSubstring("$2a$"))
		Expect(w.Body.String()).NotTo(ContainSubstring("password"))
	})

	DescribeTable("clears a nullable url when PUT sends an empty string",
		func(resource string, create map[string]any, field string) {
			token := login("admin@example.com", adminPassword)

			w := serve(http.MethodPost, "/api/"+resource, token, create)
			Expect(w.Code).To(Equal(http.StatusCreated), w.Body.String())
			var created struct {
				Data map[string]any `json:"data"`
			}
			Expect(json.Unmarshal(w.Body.Bytes(), &created)).To(Succeed())
			Expect(created.Data[field]).NotTo(BeNil())
			path := fmt.Sprintf("/api/%s/%s", resource, created.Data["id"])

			w = serve(http.MethodPut, path, token, map[string]any{field: ""})
			Expect(w.Code).To(Equal(http.StatusOK), w.Body.String())

			w = serve(http.MethodGet, path, token, nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			var fetched struct {
				Data map[string]any `json:"data"`
			}
			Expect(json.Unmarshal(w.Body.Bytes(), &fetched)).To(Succeed())
			Expect(fetched.Data).To(HaveKeyWithValue(field, BeNil()))
		},
		Entry("blog post cover image", "blog-posts",
			map[string]any{"title": "Cover", "content": "body", "author": "Ada", "coverImageUrl": "https://cdn.test/cover.png"},
			"coverImageUrl"),
		Entry("event registration", "events",
			map[string]any{"title": "Meetup", "location": "HQ", "startsAt": "2025-09-01T09:00:00Z", "registrationUrl": "https://reg.test/meetup"},
			"registrationUrl"),
		Entry("event image", "events",
			map[string]any{"title": "Meetup", "location": "HQ", "startsAt": "2025-09-01T09:00:00Z", "imageUrl": "https://cdn.test/meetup.png"},
			"imageUrl"),
		Entry("partner website", "partners",
			map[string]any{"name": "Acme", "logoUrl": "https://acme.test/logo.png", "websiteUrl": "https://acme.test"},
			"websiteUrl"),
		Entry("story avatar", "stories",
			map[string]any{"name": "Sam", "role": "Engineer", "track": "Backend", "quote": "q", "story": "s", "avatarUrl": "https://cdn.test/sam.png"},
			"avatarUrl"),
		Entry("track icon", "tracks",
			map[string]any{"name": "Backend", "description": "Go", "icon": "server"},
			"icon"),
	)

	It("limits logins per peer address regardless of X-Forwarded-For", func() {
		mount(ratelimit.NewMemory(2, time.Minute))

		codes := make([]int, 0, 4)
		for i := range 4 {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
				bytes.NewBufferString(`{"email":"admin@example.com","password":"wrong-password"}`))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}

		Expect(codes).To(Equal([]int{
			http.StatusUnauthorized, http.StatusUnauthorized,
			http.StatusTooManyRequests, http.StatusTooManyRequests,
		}))
	})

	It("rejects malformed trusted proxy entries", func() {
		_, err := router.NewEngine([]string{"not-an-address"})
		Expect(err).To(HaveOccurred())
	})
})
