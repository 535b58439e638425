package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aescanero/videohub/pkg/domain"
)

func video(id int64, title string) domain.Video {
	v := domain.SeedVideo()
	v.ID = id
	v.Title = title
	return v
}

func TestVideoStorage_InsertListOrder(t *testing.T) {
	ctx := context.Background()
	s := NewVideoStorage()

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	for i, title := range []string{"c", "a", "b"} {
		require.NoError(t, s.Insert(ctx, video(int64(i+10), title)))
	}

	list, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].Title)
	assert.Equal(t, "a", list[1].Title)
	assert.Equal(t, "b", list[2].Title)
}

func TestVideoStorage_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewVideoStorage()
	require.NoError(t, s.Insert(ctx, video(1, "original")))

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	got.Title = "mutated"
	got.AvailableResolutions[0] = domain.ResolutionP2160

	again, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "original", again.Title)
	assert.Equal(t, domain.ResolutionP144, again.AvailableResolutions[0])
}

func TestVideoStorage_NotFound(t *testing.T) {
	ctx := context.Background()
	s := NewVideoStorage()

	_, err := s.Get(ctx, 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, video(7, "x")), domain.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, 7), domain.ErrNotFound)
}

func TestVideoStorage_UpdateKeepsPosition(t *testing.T) {
	ctx := context.Background()
	s := NewVideoStorage()
	require.NoError(t, s.Insert(ctx, video(1, "one")))
	require.NoError(t, s.Insert(ctx, video(2, "two")))

	require.NoError(t, s.Update(ctx, video(1, "uno")))

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "uno", list[0].Title)
	assert.Equal(t, "two", list[1].Title)
}

func TestVideoStorage_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	s := NewVideoStorage()
	require.NoError(t, s.Insert(ctx, video(1, "one")))
	require.NoError(t, s.Insert(ctx, video(2, "two")))
	require.NoError(t, s.Insert(ctx, video(3, "three")))

	require.NoError(t, s.Delete(ctx, 2))
	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, int64(3), list[1].ID)

	require.NoError(t, s.Clear(ctx))
	list, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestVideoStorage_ConcurrentInsert(t *testing.T) {
	ctx := context.Background()
	s := NewVideoStorage()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_ = s.Insert(ctx, video(id, "concurrent"))
		}(int64(i))
	}
	wg.Wait()

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 50)
}
