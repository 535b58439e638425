package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aescanero/videohub/pkg/ports"
)

// StreamsEventBus implements EventBus using Redis Streams
type StreamsEventBus struct {
	client        *redis.Client
	logger        *zap.Logger
	prefix        string
	consumerGroup string
	consumerName  string
	maxLen        int64
}

// NewStreamsEventBus creates a new Redis Streams event bus.
// Streams are trimmed to roughly maxLen entries; zero disables trimming.
func NewStreamsEventBus(client *redis.Client, prefix, consumerGroup, consumerName string, maxLen int64, logger *zap.Logger) *StreamsEventBus {
	return &StreamsEventBus{
		client:        client,
		logger:        logger,
		prefix:        prefix,
		consumerGroup: consumerGroup,
		consumerName:  consumerName,
		maxLen:        maxLen,
	}
}

// Publish appends an event to the topic stream
func (e *StreamsEventBus) Publish(ctx context.Context, topic string, event ports.Event) error {
	streamKey := e.streamKey(topic)

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: streamKey,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}
	if e.maxLen > 0 {
		args.MaxLen = e.maxLen
		args.Approx = true
	}

	if _, err := e.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to add to stream: %w", err)
	}

	e.logger.Debug("event published",
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)),
		zap.String("stream", streamKey))

	return nil
}

// Subscribe reads the topic stream until ctx is cancelled. Every subscription
// gets its own consumer group so each subscriber sees every event; the group
// is destroyed when the subscription ends.
func (e *StreamsEventBus) Subscribe(ctx context.Context, topic string, handler ports.EventHandler) error {
	streamKey := e.streamKey(topic)
	group := fmt.Sprintf("%s-%s", e.consumerGroup, uuid.NewString())

	// "$" so a new group only sees events published after it was created
	err := e.client.XGroupCreateMkStream(ctx, streamKey, group, "$").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	e.logger.Info("subscribed to event stream",
		zap.String("stream", streamKey),
		zap.String("consumer_group", group),
		zap.String("consumer", e.consumerName))

	go e.readStream(ctx, streamKey, group, handler)

	return nil
}

func (e *StreamsEventBus) readStream(ctx context.Context, streamKey, group string, handler ports.EventHandler) {
	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.client.XGroupDestroy(cleanupCtx, streamKey, group).Err(); err != nil {
			e.logger.Warn("failed to destroy consumer group",
				zap.String("stream", streamKey),
				zap.String("consumer_group", group),
				zap.Error(err))
		}
	}()

	for {
		if ctx.Err() != nil {
			return
		}

		streams, err := e.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    group,
			Consumer: e.consumerName,
			Streams:  []string{streamKey, ">"},
			Count:    10,
			Block:    time.Second,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			e.logger.Error("failed to read from stream",
				zap.String("stream", streamKey),
				zap.Error(err))
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
			continue
		}

		for _, stream := range streams {
			for _, message := range stream.Messages {
				e.processMessage(ctx, streamKey, group, message, handler)
			}
		}
	}
}

func (e *StreamsEventBus) processMessage(ctx context.Context, streamKey, group string, message redis.XMessage, handler ports.EventHandler) {
	data, ok := message.Values["data"].(string)
	if !ok {
		e.logger.Error("invalid message format",
			zap.String("stream", streamKey),
			zap.String("message_id", message.ID))
		return
	}

	var event ports.Event
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		e.logger.Error("failed to unmarshal event",
			zap.String("stream", streamKey),
			zap.String("message_id", message.ID),
			zap.Error(err))
		return
	}

	if err := handler(ctx, event); err != nil {
		e.logger.Error("handler error",
			zap.String("stream", streamKey),
			zap.String("message_id", message.ID),
			zap.Error(err))
		return
	}

	if err := e.client.XAck(ctx, streamKey, group, message.ID).Err(); err != nil {
		e.logger.Error("failed to acknowledge message",
			zap.String("stream", streamKey),
			zap.String("message_id", message.ID),
			zap.Error(err))
	}
}

// Close is a no-op; the Redis client is owned and closed by the caller
func (e *StreamsEventBus) Close() error {
	return nil
}

func (e *StreamsEventBus) streamKey(topic string) string {
	return fmt.Sprintf("%s:events:%s", e.prefix, topic)
}
