// Package cache keeps the rendered list of posts in Redis so that repeated
// list requests skip the database until the next write.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/yourEmotion/blogs/internal/models"
	"go.uber.org/zap"
)

const (
	FeedKey       = "blogs:feed"
	GenerationKey = "blogs:feed:gen"
	DefaultTTL    = 30 * time.Second
)

// ErrStaleFeed is returned by Set when the feed was invalidated after the
// caller read the generation.
var ErrStaleFeed = errors.New("feed invalidated during read")

// Histogram over every Redis round trip the feed makes.
var redisFeedDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "redis_feed_duration_seconds",
	Help:    "Time taken by Redis feed cache operations",
	Buckets: prometheus.DefBuckets,
}, []string{"op"})

func init() {
	prometheus.MustRegister(redisFeedDuration)
}

type RedisFeed struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisFeed(client *redis.Client, ttl time.Duration) *RedisFeed {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisFeed{client: client, ttl: ttl}
}

func observe(op string, start time.Time, err error) {
	duration := time.Since(start)
	redisFeedDuration.WithLabelValues(op).Observe(duration.Seconds())
	if err != nil && !errors.Is(err, redis.Nil) && !errors.Is(err, ErrStaleFeed) {
		zap.L().Warn("redis feed op failed",
			zap.String("op", op),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
	}
}

// Get returns the cached feed. ok is false on a miss.
func (f *RedisFeed) Get(ctx context.Context) (posts []models.Post, ok bool, err error) {
	start := time.Now()
	data, err := f.client.Get(ctx, FeedKey).Bytes()
	observe("get", start, err)
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, false, err
	}
	return posts, true, nil
}

// Generation returns the invalidation counter. Read it before loading the
// posts from the store and pass it to Set.
func (f *RedisFeed) Generation(ctx context.Context) (int64, error) {
	start := time.Now()
	gen, err := f.client.Get(ctx, GenerationKey).Int64()
	observe("gen", start, err)
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Set stores posts only while the generation still equals gen. The check
// and the write run under WATCH, so an Invalidate in between aborts it.
func (f *RedisFeed) Set(ctx context.Context, posts []models.Post, gen int64) error {
	data, err := json.Marshal(posts)
	if err != nil {
		return err
	}

	start := time.Now()
	err = f.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, GenerationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return ErrStaleFeed
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, FeedKey, data, f.ttl)
			return nil
		})
		return err
	}, GenerationKey)
	if errors.Is(err, redis.TxFailedErr) {
		err = ErrStaleFeed
	}
	observe("set", start, err)
	return err
}

// Invalidate bumps the generation and drops the cached feed atomically.
func (f *RedisFeed) Invalidate(ctx context.Context) error {
	start := time.Now()
	_, err := f.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, GenerationKey)
		pipe.Del(ctx, FeedKey)
		return nil
	})
	observe("del", start, err)
	return err
}
