package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/cms/internal/http/dto"
	"basegraph.app/cms/internal/http/handler"
	"basegraph.app/cms/internal/http/middleware"
	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/service"
)

var _ = Describe("BlogPostHandler", func() {
	var (
		router *gin.Engine
		svc    *mockBlogPostService
	)

	BeforeEach(func() {
		router = gin.New()
		router.Use(middleware.RequestID())
		svc = &mockBlogPostService{}
		h := handler.NewBlogPostHandler(svc)
		router.GET("/posts", middleware.Validate[dto.BlogPostQuery](middleware.Query), h.List)
		router.GET("/posts/:id", middleware.Validate[dto.LookupParam](middleware.Params), h.Get)
		router.POST("/posts", middleware.Validate[dto.CreateBlogPostRequest](middleware.Body), h.Create)
		router.PUT("/posts/:id",
			middleware.Validate[dto.IDParam](middleware.Params),
			middleware.Validate[dto.UpdateBlogPostRequest](middleware.Body),
			h.Update)
		router.DELETE("/posts/:id", middleware.Validate[dto.IDParam](middleware.Params), h.Delete)
	})

	serve := func(method, path string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	errorCode := func(w *httptest.ResponseRecorder) string {
		var resp dto.ErrorResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		return resp.Error.Code
	}

	Describe("List", func() {
		It("wraps items and pagination", func() {
			svc.listFn = func(_ context.Context, q service.BlogPostQuery) (model.Page[model.BlogPost], error) {
				Expect(q.Page).To(Equal(2))
				Expect(q.Tag).To(Equal("go"))
				Expect(q.Staff).To(BeFalse())
				return model.Page[model.BlogPost]{
					Items: []model.BlogPost{{ID: 9007199254740993, Title: "Hello"}},
					Page:  2, Limit: 10, Total: 11, TotalPages: 2,
				}, nil
			}

			w := serve(http.MethodGet, "/posts?page=2&tag=go", nil)
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp struct {
				Data       []map[string]any `json:"data"`
				Pagination dto.Pagination   `json:"pagination"`
			}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Data).To(HaveLen(1))
			Expect(resp.Data[0]["id"]).To(Equal("9007199254740993"))
			Expect(resp.Data[0]).To(HaveKeyWithValue("tags", BeEmpty()))
			Expect(resp.Pagination).To(Equal(dto.Pagination{Page: 2, Limit: 10, Total: 11, TotalPages: 2}))
		})

		It("maps an unknown sort to a validation error on sort", func() {
			svc.listFn = func(context.Context, service.BlogPostQuery) (model.Page[model.BlogPost], error) {
				return model.Page[model.BlogPost]{}, &service.FieldError{Err: service.ErrInvalidSort, Field: "sort", Reason: "cannot sort by password"}
			}

			w := serve(http.MethodGet, "/posts?sort=password", nil)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			var resp dto.ErrorResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Error.Details).To(ConsistOf(dto.ErrorDetail{Field: "sort", Rule: "sort", Message: "cannot sort by password"}))
		})
	})

	Describe("Get", func() {
		It("falls back to the slug when the key is not an id", func() {
			svc.getBySlugFn = func(_ context.Context, slug string, _ bool) (*model.BlogPost, error) {
				return &model.BlogPost{ID: 1, Slug: slug}, nil
			}

			w := serve(http.MethodGet, "/posts/hello-world", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"slug":"hello-world"`))
		})

		It("tries numeric keys as slugs when no id matches", func() {
			svc.getBySlugFn = func(_ context.Context, slug string, _ bool) (*model.BlogPost, error) {
				return &model.BlogPost{ID: 1, Slug: slug}, nil
			}

			w := serve(http.MethodGet, "/posts/2025", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("returns 404 envelopes", func() {
			w := serve(http.MethodGet, "/posts/missing", nil)
			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(errorCode(w)).To(Equal(dto.CodeNotFound))
		})
	})

	Describe("Create", func() {
		It("returns 201 with the stored document", func() {
			svc.createFn = func(_ context.Context, post *model.BlogPost) error {
				Expect(post.Tags).To(Equal([]string{"Go", "news"}))
				Expect(post.CoverImageURL).To(BeNil())
				post.ID = 5
				post.Slug = "hello"
				return nil
			}

			w := serve(http.MethodPost, "/posts", map[string]any{
				"title": "Hello", "content": "Body", "author": "Ada", "tags": []string{"Go", "news"},
			})
			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(w.Body.String()).To(ContainSubstring(`"id":"5"`))
		})

		It("rejects an over-long excerpt", func() {
			excerpt := make([]byte, model.MaxExcerptLength+1)
			for i := range excerpt {
				excerpt[i] = 'a'
			}
			w := serve(http.MethodPost, "/posts", map[string]any{
				"title": "Hello", "content": "Body", "author": "Ada", "excerpt": string(excerpt),
			})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(errorCode(w)).To(Equal(dto.CodeValidation))
		})

		It("maps slug collisions to 409 naming the field", func() {
			svc.createFn = func(context.Context, *model.BlogPost) error {
				return &service.FieldError{Err: service.ErrConflict, Field: "slug", Reason: "slug already exists"}
			}

			w := serve(http.MethodPost, "/posts", map[string]any{"title": "Hello", "content": "Body", "author": "Ada"})
			Expect(w.Code).To(Equal(http.StatusConflict))
			var resp dto.ErrorResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Error.Code).To(Equal(dto.CodeConflict))
			Expect(resp.Error.Details).To(ConsistOf(dto.ErrorDetail{Field: "slug", Rule: "unique", Message: "slug already exists"}))
		})

		It("hides unexpected errors", func() {
			svc.createFn = func(context.Context, *model.BlogPost) error {
				return errors.New("connection reset by peer")
			}

			w := serve(http.MethodPost, "/posts", map[string]any{"title": "Hello", "content": "Body", "author": "Ada"})
			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(w.Body.String()).NotTo(ContainSubstring("connection reset"))
			Expect(errorCode(w)).To(Equal(dto.CodeInternal))
		})
	})

	Describe("Update", func() {
		It("passes only the fields that were sent", func() {
			svc.updateFn = func(_ context.Context, id int64, in service.BlogPostUpdate) (*model.BlogPost, error) {
				Expect(id).To(Equal(int64(3)))
				Expect(in.Title).To(BeNil())
				Expect(*in.Status).To(Equal(model.PostStatusPublished))
				return &model.BlogPost{ID: id, Status: *in.Status}, nil
			}

			w := serve(http.MethodPut, "/posts/3", map[string]any{"status": "published"})
			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("sends an empty cover image url through so it can be cleared", func() {
			svc.updateFn = func(_ context.Context, id int64, in service.BlogPostUpdate) (*model.BlogPost, error) {
				Expect(in.CoverImageURL).NotTo(BeNil())
				Expect(*in.CoverImageURL).To(BeEmpty())
				return &model.BlogPost{ID: id}, nil
			}

			w := serve(http.MethodPut, "/posts/3", map[string]any{"coverImageUrl": ""})
			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("returns 404 for missing documents", func() {
			svc.updateFn = func(context.Context, int64, service.BlogPostUpdate) (*model.BlogPost, error) {
				return nil, service.ErrNotFound
			}

			w := serve(http.MethodPut, "/posts/3", map[string]any{"title": "x"})
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("Delete", func() {
		It("returns 204", func() {
			w := serve(http.MethodDelete, "/posts/3", nil)
			Expect(w.Code).To(Equal(http.StatusNoContent))
		})

		It("returns 404 for missing documents", func() {
			svc.deleteFn = func(context.Context, int64) error {
				return service.ErrNotFound
			}
			w := serve(http.MethodDelete, "/posts/3", nil)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
