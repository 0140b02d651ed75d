package service_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/cms/common/id"
	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/service"
)

var _ = Describe("EventService", func() {
	var (
		svc       service.EventService
		mockStore *mockEventStore
		ctx       context.Context
		starts    time.Time
	)

	BeforeEach(func() {
		ctx = context.Background()
		mockStore = &mockEventStore{}
		Expect(id.Init(1)).To(Succeed())
		svc = service.NewEventService(mockStore, &recordingPublisher{})
		starts = time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)
	})

	It("should reject an event that ends before it starts", func() {
		ends := starts.Add(-time.Hour)
		err := svc.Create(ctx, &model.Event{Title: "Backwards", StartsAt: starts, EndsAt: &ends})
		Expect(err).To(MatchError(service.ErrInvalidInput))
	})

	It("should default status and derive the slug", func() {
		event := &model.Event{Title: "Open House 2025", StartsAt: starts}
		Expect(svc.Create(ctx, event)).To(Succeed())
		Expect(event.Slug).To(Equal("open-house-2025"))
		Expect(event.Status).To(Equal(model.EventStatusUpcoming))
	})

	It("should check the merged window on update", func() {
		mockStore.getByIDFn = func(context.Context, int64) (*model.Event, error) {
			return &model.Event{ID: 1, StartsAt: starts}, nil
		}
		updated := false
		mockStore.updateFn = func(context.Context, int64, model.Patch) (*model.Event, error) {
			updated = true
			return &model.Event{ID: 1}, nil
		}

		ends := starts.Add(-time.Minute)
		_, err := svc.Update(ctx, 1, service.EventUpdate{EndsAt: &ends})
		Expect(err).To(MatchError(service.ErrInvalidInput))
		Expect(updated).To(BeFalse())

		ends = starts.Add(2 * time.Hour)
		_, err = svc.Update(ctx, 1, service.EventUpdate{EndsAt: &ends})
		Expect(err).NotTo(HaveOccurred())
		Expect(updated).To(BeTrue())
	})

	It("should list published events soonest first for the public", func() {
		var captured model.ListParams
		mockStore.listFn = func(_ context.Context, params model.ListParams) ([]model.Event, int64, error) {
			captured = params
			return nil, 0, nil
		}

		page, err := svc.List(ctx, service.EventQuery{Status: model.EventStatusOngoing})
		Expect(err).NotTo(HaveOccurred())
		Expect(captured.Sort).To(Equal("starts_at"))
		Expect(captured.Order).To(Equal(model.SortAsc))
		Expect(captured.Filters).To(ConsistOf(
			model.Eq("is_published", true),
			model.Eq("status", model.EventStatusOngoing),
		))
		Expect(page.Items).NotTo(BeNil())
		Expect(page.TotalPages).To(BeZero())
	})
})

var _ = Describe("TrackService", func() {
	It("should patch only the sort order", func() {
		mockStore := &mockTrackStore{}
		var patch model.Patch
		mockStore.updateFn = func(_ context.Context, _ int64, p model.Patch) (*model.Track, error) {
			patch = p
			return &model.Track{ID: 1, SortOrder: 5}, nil
		}
		svc := service.NewTrackService(mockStore, &recordingPublisher{})

		order := 5
		track, err := svc.Update(context.Background(), 1, service.TrackUpdate{SortOrder: &order})
		Expect(err).NotTo(HaveOccurred())
		Expect(track.SortOrder).To(Equal(5))
		Expect(patch).To(Equal(model.Patch{"sort_order": 5}))
	})
})
