package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourEmotion/blogs/internal/models"
)

func newFeed(t *testing.T, ttl time.Duration) (*RedisFeed, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisFeed(client, ttl), mr
}

func TestRedisFeed_MissThenHit(t *testing.T) {
	ctx := context.Background()
	feed, _ := newFeed(t, time.Minute)

	_, ok, err := feed.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	date := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	in := []models.Post{{ID: "a", Title: "Hi", Content: "World", Author: "A", Password: "secret", Date: date}}
	require.NoError(t, feed.Set(ctx, in, 0))

	got, ok, err := feed.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Hi", got[0].Title)
	assert.True(t, date.Equal(got[0].Date))
	assert.Empty(t, got[0].Password, "password must not be cached")
}

func TestRedisFeed_TTL(t *testing.T) {
	ctx := context.Background()
	feed, mr := newFeed(t, 5*time.Second)

	require.NoError(t, feed.Set(ctx, []models.Post{{ID: "a"}}, 0))
	assert.Equal(t, 5*time.Second, mr.TTL(FeedKey))

	mr.FastForward(6 * time.Second)
	_, ok, err := feed.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisFeed_DefaultTTL(t *testing.T) {
	feed, _ := newFeed(t, 0)
	assert.Equal(t, DefaultTTL, feed.ttl)
}

func TestRedisFeed_Invalidate(t *testing.T) {
	ctx := context.Background()
	feed, mr := newFeed(t, time.Minute)

	require.NoError(t, feed.Set(ctx, []models.Post{{ID: "a"}}, 0))
	require.NoError(t, feed.Invalidate(ctx))
	assert.False(t, mr.Exists(FeedKey))

	gen, err := feed.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)
}

func TestRedisFeed_SetAfterInvalidateIsRejected(t *testing.T) {
	ctx := context.Background()
	feed, mr := newFeed(t, time.Minute)

	gen, err := feed.Generation(ctx)
	require.NoError(t, err)

	// a write lands while the caller is still reading the store
	require.NoError(t, feed.Invalidate(ctx))

	err = feed.Set(ctx, []models.Post{{ID: "stale"}}, gen)
	assert.ErrorIs(t, err, ErrStaleFeed)
	assert.False(t, mr.Exists(FeedKey))

	gen, err = feed.Generation(ctx)
	require.NoError(t, err)
	require.NoError(t, feed.Set(ctx, []models.Post{{ID: "fresh"}}, gen))

	got, ok, err := feed.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "fresh", got[0].ID)
}

func TestRedisFeed_CorruptValue(t *testing.T) {
	ctx := context.Background()
	feed, mr := newFeed(t, time.Minute)
	require.NoError(t, mr.Set(FeedKey, "not json"))

	_, ok, err := feed.Get(ctx)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestRedisFeed_ServerDown(t *testing.T) {
	ctx := context.Background()
	feed, mr := newFeed(t, time.Minute)
	mr.Close()

	_, ok, err := feed.Get(ctx)
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, feed.Invalidate(ctx))
}
