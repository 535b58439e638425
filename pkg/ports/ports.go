// Package ports declares the interfaces between the catalog service and its adapters.
package ports

import (
	"context"
	"time"

	"github.com/aescanero/videohub/pkg/domain"
)

// VideoRepository stores the ordered video collection.
// Get, Update and Delete return domain.ErrNotFound for unknown ids.
type VideoRepository interface {
	List(ctx context.Context) ([]domain.Video, error)
	Get(ctx context.Context, id int64) (*domain.Video, error)
	Insert(ctx context.Context, video domain.Video) error
	Update(ctx context.Context, video domain.Video) error
	Delete(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
}

// IDGenerator hands out video identifiers. Consecutive calls never repeat a value.
type IDGenerator interface {
	NextID(ctx context.Context) (int64, error)
}

// EventType identifies a catalog change
type EventType string

const (
	EventTypeVideoCreated EventType = "video.created"
	EventTypeVideoUpdated EventType = "video.updated"
	EventTypeVideoDeleted EventType = "video.deleted"
	EventTypeVideosReset  EventType = "videos.reset"
)

// TopicVideoEvents carries every catalog change
const TopicVideoEvents = "video.events"

// Event is a change notification
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	VideoID   *int64                 `json:"videoId,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// EventHandler processes a delivered event
type EventHandler func(ctx context.Context, event Event) error

// EventBus publishes and delivers events by topic.
// Subscriptions end when the subscribing context is cancelled.
type EventBus interface {
	Publish(ctx context.Context, topic string, event Event) error
	Subscribe(ctx context.Context, topic string, handler EventHandler) error
	Close() error
}

// MetricsCollector records catalog metrics
type MetricsCollector interface {
	RecordOperation(operation, status string)
	RecordValidationFailure(field string)
	IncVideos()
	DecVideos()
	SetVideos(count int)
	ObserveRequestDuration(method, route string, status int, duration time.Duration)
}
