package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/cms/internal/http/dto"
	"basegraph.app/cms/internal/http/middleware"
)

var _ = Describe("Validate", func() {
	var router *gin.Engine

	BeforeEach(func() {
		router = gin.New()
		router.GET("/posts", middleware.Validate[dto.BlogPostQuery](middleware.Query), func(c *gin.Context) {
			q := middleware.Validated[dto.BlogPostQuery](c)
			c.JSON(http.StatusOK, gin.H{"page": q.Page, "limit": q.Limit, "tag": q.Tag})
		})
		router.POST("/tracks", middleware.Validate[dto.CreateTrackRequest](middleware.Body), func(c *gin.Context) {
			req := middleware.Validated[dto.CreateTrackRequest](c)
			c.JSON(http.StatusCreated, gin.H{"name": req.Name, "isActive": req.ToModel().IsActive})
		})
		router.PUT("/partners/:id", middleware.Validate[dto.UpdatePartnerRequest](middleware.Body), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		router.PUT("/tracks/:id",
			middleware.Validate[dto.IDParam](middleware.Params),
			middleware.Validate[dto.UpdateTrackRequest](middleware.Body),
			func(c *gin.Context) {
				param := middleware.Validated[dto.IDParam](c)
				req := middleware.Validated[dto.UpdateTrackRequest](c)
				c.JSON(http.StatusOK, gin.H{"id": param.ID, "sortOrder": *req.SortOrder})
			})
	})

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	jsonRequest := func(method, path, body string) *http.Request {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	It("coerces query strings into typed fields", func() {
		w := serve(httptest.NewRequest(http.MethodGet, "/posts?page=2&limit=5&tag=go", nil))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`{"page":2,"limit":5,"tag":"go"}`))
	})

	It("rejects a limit above the maximum with field details", func() {
		w := serve(httptest.NewRequest(http.MethodGet, "/posts?limit=101", nil))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		body := decodeError(w)
		Expect(body.Code).To(Equal(dto.CodeValidation))
		Expect(body.Details).To(ConsistOf(dto.ErrorDetail{Field: "limit", Rule: "max", Param: "100"}))
	})

	It("rejects an unknown order", func() {
		w := serve(httptest.NewRequest(http.MethodGet, "/posts?order=sideways", nil))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decodeError(w).Details).To(ConsistOf(dto.ErrorDetail{Field: "order", Rule: "sortorder"}))
	})

	It("rejects a non-numeric page", func() {
		w := serve(httptest.NewRequest(http.MethodGet, "/posts?page=abc", nil))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decodeError(w).Details[0].Rule).To(Equal("type"))
	})

	It("rejects an explicit zero page or limit", func() {
		w := serve(httptest.NewRequest(http.MethodGet, "/posts?page=0", nil))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decodeError(w).Details).To(ConsistOf(dto.ErrorDetail{Field: "page", Rule: "min", Param: "1"}))

		w = serve(httptest.NewRequest(http.MethodGet, "/posts?limit=0", nil))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decodeError(w).Details).To(ConsistOf(dto.ErrorDetail{Field: "limit", Rule: "min", Param: "1"}))
	})

	It("leaves pagination unset when the parameters are absent", func() {
		w := serve(httptest.NewRequest(http.MethodGet, "/posts", nil))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`{"page":null,"limit":null,"tag":""}`))
	})

	It("accepts an empty nullable url but rejects a malformed one", func() {
		w := serve(jsonRequest(http.MethodPut, "/partners/1", `{"websiteUrl":""}`))
		Expect(w.Code).To(Equal(http.StatusNoContent))

		w = serve(jsonRequest(http.MethodPut, "/partners/1", `{"websiteUrl":"not a url"}`))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decodeError(w).Details).To(ConsistOf(dto.ErrorDetail{Field: "websiteUrl", Rule: "url"}))

		w = serve(jsonRequest(http.MethodPut, "/partners/1", `{"logoUrl":""}`))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("reports missing required body fields by JSON name", func() {
		w := serve(jsonRequest(http.MethodPost, "/tracks", `{"description":"x"}`))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decodeError(w).Details).To(ContainElement(dto.ErrorDetail{Field: "name", Rule: "required"}))
	})

	It("reports malformed JSON as a body error", func() {
		w := serve(jsonRequest(http.MethodPost, "/tracks", `{`))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		body := decodeError(w)
		Expect(body.Code).To(Equal(dto.CodeValidation))
		Expect(body.Details).To(HaveLen(1))
		Expect(body.Details[0].Field).To(Equal("body"))
	})

	It("rejects slugs that are not canonical", func() {
		w := serve(jsonRequest(http.MethodPost, "/tracks", `{"name":"Go","description":"x","slug":"Not A Slug"}`))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decodeError(w).Details).To(ConsistOf(dto.ErrorDetail{Field: "slug", Rule: "slug"}))
	})

	It("applies create defaults", func() {
		w := serve(jsonRequest(http.MethodPost, "/tracks", `{"name":"Go","description":"x"}`))
		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(w.Body.String()).To(MatchJSON(`{"name":"Go","isActive":true}`))
	})

	It("binds params and body on the same route", func() {
		w := serve(jsonRequest(http.MethodPut, "/tracks/17", `{"sortOrder":5}`))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`{"id":17,"sortOrder":5}`))
	})

	It("rejects non-numeric ids", func() {
		w := serve(jsonRequest(http.MethodPut, "/tracks/abc", `{"sortOrder":5}`))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decodeError(w).Code).To(Equal(dto.CodeValidation))
	})
})
