package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aescanero/videohub/pkg/domain"
)

// VideoStorage implements ports.VideoRepository and ports.IDGenerator using Redis.
//
// Layout:
//   - <prefix>:video:<id>     JSON encoded record
//   - <prefix>:videos:order   list of ids in insertion order
//   - <prefix>:videos:seq     id counter
type VideoStorage struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewVideoStorage creates a new Redis video storage
func NewVideoStorage(client *redis.Client, prefix string, logger *zap.Logger) *VideoStorage {
	return &VideoStorage{
		client: client,
		prefix: prefix,
		logger: logger,
	}
}

// NextID returns the next value of the id counter
func (s *VideoStorage) NextID(ctx context.Context) (int64, error) {
	id, err := s.client.Incr(ctx, s.seqKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate id: %w", err)
	}
	return id, nil
}

// List returns all videos in insertion order
func (s *VideoStorage) List(ctx context.Context) ([]domain.Video, error) {
	ids, err := s.client.LRange(ctx, s.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read order: %w", err)
	}

	videos := make([]domain.Video, 0, len(ids))
	if len(ids) == 0 {
		return videos, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.videoKeyRaw(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get videos: %w", err)
	}

	for i, value := range values {
		data, ok := value.(string)
		if !ok {
			// order entry without a record, left behind by an interrupted delete
			s.logger.Warn("dangling order entry", zap.String("video_id", ids[i]))
			continue
		}

		var video domain.Video
		if err := json.Unmarshal([]byte(data), &video); err != nil {
			return nil, fmt.Errorf("failed to unmarshal video %s: %w", ids[i], err)
		}
		videos = append(videos, video)
	}

	return videos, nil
}

// Get returns the video with the given id
func (s *VideoStorage) Get(ctx context.Context, id int64) (*domain.Video, error) {
	data, err := s.client.Get(ctx, s.videoKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get video: %w", err)
	}

	var video domain.Video
	if err := json.Unmarshal(data, &video); err != nil {
		return nil, fmt.Errorf("failed to unmarshal video: %w", err)
	}

	return &video, nil
}

// Insert stores a video and appends it to the order list
func (s *VideoStorage) Insert(ctx context.Context, video domain.Video) error {
	data, err := json.Marshal(video)
	if err != nil {
		return fmt.Errorf("failed to marshal video: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.videoKey(video.ID), data, 0)
		pipe.RPush(ctx, s.orderKey(), strconv.FormatInt(video.ID, 10))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to insert video: %w", err)
	}

	s.logger.Debug("video stored", zap.Int64("video_id", video.ID))
	return nil
}

// Update overwrites an existing video
func (s *VideoStorage) Update(ctx context.Context, video domain.Video) error {
	data, err := json.Marshal(video)
	if err != nil {
		return fmt.Errorf("failed to marshal video: %w", err)
	}

	ok, err := s.client.SetXX(ctx, s.videoKey(video.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}
	if !ok {
		return domain.ErrNotFound
	}

	s.logger.Debug("video updated", zap.Int64("video_id", video.ID))
	return nil
}

// Delete removes a video and its order entry
func (s *VideoStorage) Delete(ctx context.Context, id int64) error {
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, s.videoKey(id))
		pipe.LRem(ctx, s.orderKey(), 1, strconv.FormatInt(id, 10))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	if del.Val() == 0 {
		return domain.ErrNotFound
	}

	s.logger.Debug("video deleted", zap.Int64("video_id", id))
	return nil
}

// Clear removes every video. The id counter is kept so ids are never reused.
func (s *VideoStorage) Clear(ctx context.Context) error {
	pattern := s.prefix + ":video:*"

	var cursor uint64
	keys := []string{s.orderKey()}

	for {
		var batch []string
		var err error

		batch, cursor, err = s.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan keys: %w", err)
		}

		keys = append(keys, batch...)

		if cursor == 0 {
			break
		}
	}

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear videos: %w", err)
	}

	s.logger.Debug("videos cleared", zap.Int("keys", len(keys)))
	return nil
}

func (s *VideoStorage) videoKey(id int64) string {
	return s.videoKeyRaw(strconv.FormatInt(id, 10))
}

func (s *VideoStorage) videoKeyRaw(id string) string {
	return fmt.Sprintf("%s:video:%s", s.prefix, id)
}

func (s *VideoStorage) orderKey() string {
	return s.prefix + ":videos:order"
}

func (s *VideoStorage) seqKey() string {
	return s.prefix + ":videos:seq"
}
