package memory

import (
	"context"
	"sync"

	"github.com/aescanero/videohub/pkg/domain"
)

// VideoStorage implements ports.VideoRepository with an ordered in-memory slice.
// Records are copied on the way in and out so callers never share state with the store.
type VideoStorage struct {
	videos []domain.Video
	mu     sync.RWMutex
}

// NewVideoStorage creates an empty in-memory video storage
func NewVideoStorage() *VideoStorage {
	return &VideoStorage{
		videos: make([]domain.Video, 0),
	}
}

// List returns all videos in insertion order
func (s *VideoStorage) List(ctx context.Context) ([]domain.Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Video, len(s.videos))
	for i, v := range s.videos {
		out[i] = v.Clone()
	}
	return out, nil
}

// Get returns the first video with the given id
func (s *VideoStorage) Get(ctx context.Context, id int64) (*domain.Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	v := s.videos[i].Clone()
	return &v, nil
}

// Insert appends a video
func (s *VideoStorage) Insert(ctx context.Context, video domain.Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.videos = append(s.videos, video.Clone())
	return nil
}

// Update replaces the stored video with the same id, keeping its position
func (s *VideoStorage) Update(ctx context.Context, video domain.Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(video.ID)
	if i < 0 {
		return domain.ErrNotFound
	}
	s.videos[i] = video.Clone()
	return nil
}

// Delete removes the first video with the given id
func (s *VideoStorage) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	s.videos = append(s.videos[:i], s.videos[i+1:]...)
	return nil
}

// Clear removes every video
func (s *VideoStorage) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.videos = make([]domain.Video, 0)
	return nil
}

// indexOf must be called with the lock held
func (s *VideoStorage) indexOf(id int64) int {
	for i := range s.videos {
		if s.videos[i].ID == id {
			return i
		}
	}
	return -1
}
