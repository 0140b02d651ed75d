// Package storetest holds the behavior every store.Provider must share.
// Backends call DescribeProvider from their own suites.
package storetest

import (
	"context"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/store"
)

// DescribeProvider registers the shared specs. setup runs before each spec
// and must return an empty provider.
func DescribeProvider(name string, setup func(ctx context.Context) store.Provider) bool {
	return Describe(name+" provider contract", func() {
		var (
			ctx context.Context
			p   store.Provider
		)

		BeforeEach(func() {
			ctx = context.Background()
			p = setup(ctx)
		})

		It("round trips a created document", func() {
			ends := time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC)
			url := "https://example.com/register"
			event := &model.Event{
				ID:              101,
				Title:           "Demo Day",
				Slug:            "demo-day",
				Description:     "Graduates present",
				Location:        "Hall A",
				StartsAt:        time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
				EndsAt:          &ends,
				Status:          model.EventStatusUpcoming,
				RegistrationURL: &url,
				IsPublished:     true,
			}
			Expect(p.Events().Create(ctx, event)).To(Succeed())
			Expect(event.CreatedAt).NotTo(BeZero())

			got, err := p.Events().GetByID(ctx, 101)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Title).To(Equal("Demo Day"))
			Expect(got.StartsAt.Equal(event.StartsAt)).To(BeTrue())
			Expect(got.EndsAt).NotTo(BeNil())
			Expect(got.EndsAt.Equal(ends)).To(BeTrue())
			Expect(got.RegistrationURL).To(Equal(&url))
			Expect(got.ImageURL).To(BeNil())
			Expect(got.Status).To(Equal(model.EventStatusUpcoming))

			bySlug, err := p.Events().GetBySlug(ctx, "demo-day")
			Expect(err).NotTo(HaveOccurred())
			Expect(bySlug.ID).To(Equal(int64(101)))
		})

		It("keeps large snowflake ids exact", func() {
			const id = int64(1864230786750857217)
			Expect(p.Stories().Create(ctx, &model.Story{ID: id, Name: "Ada", Quote: "q"})).To(Succeed())
			got, err := p.Stories().GetByID(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(id))
		})

		It("rejects a colliding unique field", func() {
			Expect(p.Users().Create(ctx, &model.User{ID: 1, Email: "a@example.com", Name: "A", Role: model.RoleAdmin})).To(Succeed())
			err := p.Users().Create(ctx, &model.User{ID: 2, Email: "a@example.com", Name: "B", Role: model.RoleEditor})
			Expect(err).To(MatchError(store.ErrConflict))

			_, err = p.Users().GetByID(ctx, 2)
			Expect(err).To(MatchError(store.ErrNotFound))
		})

		It("updates only the patched fields", func() {
			Expect(p.Tracks().Create(ctx, &model.Track{
				ID: 5, Name: "Backend", Slug: "backend", Description: "APIs",
				Skills: []string{"go"}, LearningOutcomes: []string{"ship"}, IsActive: true, SortOrder: 1,
			})).To(Succeed())

			got, err := p.Tracks().Update(ctx, 5, model.Patch{"sort_order": 5})
			Expect(err).NotTo(HaveOccurred())
			Expect(got.SortOrder).To(Equal(5))
			Expect(got.Name).To(Equal("Backend"))
			Expect(got.Description).To(Equal("APIs"))
			Expect(got.Skills).To(Equal([]string{"go"}))
			Expect(got.IsActive).To(BeTrue())
			Expect(got.UpdatedAt.Before(got.CreatedAt)).To(BeFalse())
		})

		It("does not upsert on update", func() {
			_, err := p.Partners().Update(ctx, 404, model.Patch{"name": "Ghost"})
			Expect(err).To(MatchError(store.ErrNotFound))
			_, total, err := p.Partners().List(ctx, model.ListParams{Page: 1, Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(BeZero())
		})

		It("deletes documents", func() {
			Expect(p.Partners().Create(ctx, &model.Partner{ID: 9, Name: "Acme", Slug: "acme", LogoURL: "l"})).To(Succeed())
			Expect(p.Partners().Delete(ctx, 9)).To(Succeed())
			Expect(p.Partners().Delete(ctx, 9)).To(MatchError(store.ErrNotFound))
		})

		It("pages filtered listings in a stable order", func() {
			base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
			for i := 1; i <= 25; i++ {
				at := base.Add(time.Duration(i) * time.Hour)
				tags := []string{"all"}
				if i%5 == 0 {
					tags = append(tags, "fifth")
				}
				Expect(p.BlogPosts().Create(ctx, &model.BlogPost{
					ID: int64(i), Title: fmt.Sprintf("Post %d", i), Slug: fmt.Sprintf("post-%d", i),
					Content: "c", Author: "a", Tags: tags, Status: model.PostStatusPublished, PublishedAt: &at,
				})).To(Succeed())
			}
			Expect(p.BlogPosts().Create(ctx, &model.BlogPost{
				ID: 99, Title: "Draft", Slug: "draft", Content: "c", Author: "a", Status: model.PostStatusDraft,
			})).To(Succeed())

			params := model.ListParams{
				Page: 1, Limit: 10, Sort: "published_at", Order: model.SortDesc,
				Filters: []model.Filter{model.Eq("status", model.PostStatusPublished)},
			}
			items, total, err := p.BlogPosts().List(ctx, params)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(25)))
			Expect(items).To(HaveLen(10))
			Expect(items[0].ID).To(Equal(int64(25)))
			Expect(model.TotalPages(total, params.Limit)).To(Equal(3))

			params.Page = 3
			items, _, err = p.BlogPosts().List(ctx, params)
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(5))

			tagged, total, err := p.BlogPosts().List(ctx, model.ListParams{
				Page: 1, Limit: 10, Sort: "id", Order: model.SortAsc,
				Filters: []model.Filter{model.Contains("tags", "fifth")},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(5)))
			Expect(tagged[0].ID).To(Equal(int64(5)))
		})
	})
}
