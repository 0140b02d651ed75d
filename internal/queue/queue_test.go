package queue_test

import (
	"context"
	"fmt"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/queue"
)

var _ = Describe("ParseChangeEvent", func() {
	It("should decode stream values", func() {
		event, err := queue.ParseChangeEvent(redis.XMessage{
			ID: "1-0",
			Values: map[string]any{
				"resource": "tracks",
				"action":   "updated",
				"id":       "1864230786750857216",
				"at":       "2025-03-01T12:00:00Z",
				"trace_id": "abc",
			},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(event.Resource).To(Equal(model.ResourceTracks))
		Expect(event.Action).To(Equal(queue.ActionUpdated))
		Expect(event.ID).To(Equal(int64(1864230786750857216)))
		Expect(event.At.Equal(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))).To(BeTrue())
		Expect(event.TraceID).To(Equal("abc"))
	})

	It("should reject entries missing an id", func() {
		_, err := queue.ParseChangeEvent(redis.XMessage{Values: map[string]any{
			"resource": "tracks", "action": "created", "at": "2025-03-01T12:00:00Z",
		}})
		Expect(err).To(MatchError(ContainSubstring("missing id")))
	})
})

var _ = Describe("NopPublisher", func() {
	It("should accept events", func() {
		p := queue.NewNopPublisher()
		Expect(p.Publish(context.Background(), queue.ChangeEvent{Resource: model.ResourceEvents})).To(Succeed())
		Expect(p.Close()).To(Succeed())
	})
})

var _ = Describe("Redis stream", func() {
	var client *redis.Client

	BeforeEach(func() {
		url := os.Getenv("TEST_REDIS_URL")
		if url == "" {
			Skip("TEST_REDIS_URL not set")
		}
		opts, err := redis.ParseURL(url)
		Expect(err).NotTo(HaveOccurred())
		client = redis.NewClient(opts)
	})

	It("should deliver published events to a consumer group", func(ctx SpecContext) {
		stream := fmt.Sprintf("cms_test_events_%d", time.Now().UnixNano())
		DeferCleanup(func() { client.Del(context.Background(), stream) })

		consumer, err := queue.NewRedisConsumer(ctx, client, queue.ConsumerConfig{
			Stream: stream, Group: "test", Consumer: "c1", BatchSize: 10, Block: 100 * time.Millisecond,
		})
		Expect(err).NotTo(HaveOccurred())

		publisher := queue.NewRedisPublisher(client, stream, 100, nil)
		at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		Expect(publisher.Publish(ctx, queue.ChangeEvent{
			Resource: model.ResourcePartners, Action: queue.ActionDeleted, ID: 9, At: at,
		})).To(Succeed())

		messages, err := consumer.Read(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(messages).To(HaveLen(1))
		Expect(messages[0].Event.Resource).To(Equal(model.ResourcePartners))
		Expect(messages[0].Event.ID).To(Equal(int64(9)))
		Expect(consumer.Ack(ctx, messages[0].ID)).To(Succeed())
	})
})
