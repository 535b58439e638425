package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/aescanero/videohub/pkg/domain"
	"github.com/aescanero/videohub/pkg/ports"
)

const (
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
	opReset  = "reset"

	statusOK       = "ok"
	statusInvalid  = "invalid"
	statusNotFound = "not_found"
	statusError    = "error"
)

// Service implements the video catalog operations
type Service struct {
	repo      ports.VideoRepository
	ids       ports.IDGenerator
	events    ports.EventBus
	metrics   ports.MetricsCollector
	validator *Validator
	logger    *zap.Logger
	now       func() time.Time
}

// Option customizes a Service
type Option func(*Service)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new catalog service
func NewService(
	repo ports.VideoRepository,
	ids ports.IDGenerator,
	events ports.EventBus,
	metrics ports.MetricsCollector,
	validator *Validator,
	logger *zap.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		repo:      repo,
		ids:       ids,
		events:    events,
		metrics:   metrics,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed installs the seed record unless a video with its id already exists,
// then syncs the size gauge.
func (s *Service) Seed(ctx context.Context) error {
	seed := domain.SeedVideo()

	_, err := s.repo.Get(ctx, seed.ID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		if err := s.repo.Insert(ctx, seed); err != nil {
			return fmt.Errorf("failed to insert seed video: %w", err)
		}
		s.logger.Info("seed video installed", zap.Int64("video_id", seed.ID))
	case err != nil:
		return fmt.Errorf("failed to look up seed video: %w", err)
	}

	return s.SyncMetrics(ctx)
}

// SyncMetrics sets the size gauge from the repository
func (s *Service) SyncMetrics(ctx context.Context) error {
	videos, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list videos: %w", err)
	}
	s.metrics.SetVideos(len(videos))
	return nil
}

// List returns the whole catalog in insertion order
func (s *Service) List(ctx context.Context) ([]domain.Video, error) {
	videos, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return videos, nil
}

// Get returns a single video or domain.ErrNotFound
func (s *Service) Get(ctx context.Context, id int64) (*domain.Video, error) {
	video, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return video, nil
}

// Create validates body and appends a new video.
// Returns *domain.ValidationError when any field is rejected.
func (s *Service) Create(ctx context.Context, body []byte) (*domain.Video, error) {
	parsed, err := parseBody(body)
	if err != nil {
		s.metrics.RecordOperation(opCreate, statusInvalid)
		return nil, err
	}

	draft, violations := s.validator.ValidateCreate(parsed)
	if err := s.reject(opCreate, violations); err != nil {
		return nil, err
	}

	id, err := s.ids.NextID(ctx)
	if err != nil {
		s.metrics.RecordOperation(opCreate, statusError)
		return nil, fmt.Errorf("failed to allocate id: %w", err)
	}

	video := domain.NewVideo(id, draft, s.now())
	if err := s.repo.Insert(ctx, video); err != nil {
		s.metrics.RecordOperation(opCreate, statusError)
		return nil, fmt.Errorf("failed to insert video: %w", err)
	}

	s.metrics.RecordOperation(opCreate, statusOK)
	s.metrics.IncVideos()
	s.logger.Info("video created",
		zap.Int64("video_id", video.ID),
		zap.String("title", video.Title))

	s.publish(ctx, ports.EventTypeVideoCreated, &video.ID, map[string]interface{}{
		"video": video,
	})

	return &video, nil
}

// Update replaces every mutable field of an existing video.
// The lookup happens first, so unknown ids yield domain.ErrNotFound even for invalid bodies.
func (s *Service) Update(ctx context.Context, id int64, body []byte) error {
	video, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.RecordOperation(opUpdate, statusNotFound)
			return err
		}
		s.metrics.RecordOperation(opUpdate, statusError)
		return fmt.Errorf("failed to get video: %w", err)
	}

	parsed, err := parseBody(body)
	if err != nil {
		s.metrics.RecordOperation(opUpdate, statusInvalid)
		return err
	}

	update, violations := s.validator.ValidateUpdate(parsed)
	if err := s.reject(opUpdate, violations); err != nil {
		return err
	}

	video.Apply(update)
	if err := s.repo.Update(ctx, *video); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.RecordOperation(opUpdate, statusNotFound)
			return err
		}
		s.metrics.RecordOperation(opUpdate, statusError)
		return fmt.Errorf("failed to update video: %w", err)
	}

	s.metrics.RecordOperation(opUpdate, statusOK)
	s.logger.Info("video updated", zap.Int64("video_id", id))

	s.publish(ctx, ports.EventTypeVideoUpdated, &id, map[string]interface{}{
		"video": video,
	})

	return nil
}

// Delete removes a video or returns domain.ErrNotFound
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.RecordOperation(opDelete, statusNotFound)
			return err
		}
		s.metrics.RecordOperation(opDelete, statusError)
		return fmt.Errorf("failed to delete video: %w", err)
	}

	s.metrics.RecordOperation(opDelete, statusOK)
	s.metrics.DecVideos()
	s.logger.Info("video deleted", zap.Int64("video_id", id))

	s.publish(ctx, ports.EventTypeVideoDeleted, &id, nil)

	return nil
}

// Reset empties the catalog
func (s *Service) Reset(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		s.metrics.RecordOperation(opReset, statusError)
		return fmt.Errorf("failed to clear videos: %w", err)
	}

	s.metrics.RecordOperation(opReset, statusOK)
	s.metrics.SetVideos(0)
	s.logger.Info("catalog reset")

	s.publish(ctx, ports.EventTypeVideosReset, nil, nil)

	return nil
}

func (s *Service) reject(operation string, violations domain.Violations) error {
	err := violations.Err()
	if err == nil {
		return nil
	}

	fields := make([]string, len(violations))
	for i, v := range violations {
		fields[i] = v.Field
		s.metrics.RecordValidationFailure(v.Field)
	}
	s.metrics.RecordOperation(operation, statusInvalid)
	s.logger.Debug("request rejected",
		zap.String("operation", operation),
		zap.Strings("fields", fields))

	return err
}

// publish logs delivery failures instead of returning them
func (s *Service) publish(ctx context.Context, eventType ports.EventType, videoID *int64, data map[string]interface{}) {
	event := ports.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		VideoID:   videoID,
		Timestamp: s.now().UTC(),
		Data:      data,
	}

	if err := s.events.Publish(ctx, ports.TopicVideoEvents, event); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("type", string(eventType)),
			zap.Error(err))
	}
}

func parseBody(body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, domain.ErrMalformedBody
	}
	return gjson.ParseBytes(body), nil
}
