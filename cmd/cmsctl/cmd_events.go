package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"basegraph.app/cms/common/logger"
	"basegraph.app/cms/internal/queue"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect the content change-event stream",
}

var eventsTailFlags struct {
	consumer string
	noAck    bool
}

var eventsTailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Follow change events through the configured consumer group",
	RunE:  runEventsTail,
}

func init() {
	host, _ := os.Hostname()
	eventsTailCmd.Flags().StringVar(&eventsTailFlags.consumer, "consumer", "cmsctl-"+host, "consumer name within the group")
	eventsTailCmd.Flags().BoolVar(&eventsTailFlags.noAck, "no-ack", false, "leave messages pending instead of acknowledging them")
	eventsCmd.AddCommand(eventsTailCmd)
}

func runEventsTail(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if !cfg.Redis.Enabled() {
		return errors.New("REDIS_URL is not set")
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	defer client.Close()

	consumer, err := queue.NewRedisConsumer(ctx, client, queue.ConsumerConfig{
		Stream:    cfg.Redis.EventsStream,
		Group:     cfg.Redis.ConsumerGroup,
		Consumer:  eventsTailFlags.consumer,
		BatchSize: 50,
		Block:     5 * time.Second,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for ctx.Err() == nil {
		messages, err := consumer.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		for _, msg := range messages {
			// Continue the producer's trace so the event shows up under the request that caused it.
			sc := logger.StartSpanFromTraceID(ctx, msg.Event.TraceID, "cmsctl.events.tail")
			msgCtx := logger.WithLogFields(sc.Context(), logger.LogFields{MessageID: &msg.ID})

			fmt.Fprintf(out, "%s\t%s\t%s\t%d\n",
				msg.Event.At.Format(time.RFC3339), msg.Event.Resource, msg.Event.Action, msg.Event.ID)

			if !eventsTailFlags.noAck {
				if err := consumer.Ack(msgCtx, msg.ID); err != nil {
					slog.WarnContext(msgCtx, "failed to ack change event", "error", err)
				}
			}
			sc.End()
		}
	}
	return nil
}
