package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yourEmotion/blogs/internal/cache"
	"github.com/yourEmotion/blogs/internal/common"
	"github.com/yourEmotion/blogs/internal/models"
	"github.com/yourEmotion/blogs/internal/repository/posts"
	"go.uber.org/zap"
)

// FeedCache caches the full list of posts. A nil FeedCache disables caching.
// Set must refuse with cache.ErrStaleFeed when Invalidate ran after gen was
// read.
type FeedCache interface {
	Get(ctx context.Context) ([]models.Post, bool, error)
	Generation(ctx context.Context) (int64, error)
	Set(ctx context.Context, posts []models.Post, gen int64) error
	Invalidate(ctx context.Context) error
}

type BlogService struct {
	repo  posts.Repository
	feed  FeedCache
	now   func() time.Time
	newID func() string
}

func NewBlogService(repo posts.Repository, feed FeedCache) *BlogService {
	return &BlogService{
		repo:  repo,
		feed:  feed,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// CheckPassword is the gate in front of every mutation: the submitted
// password must equal the stored one exactly.
func CheckPassword(post *models.Post, submitted string) error {
	if post.Password != submitted {
		return common.ErrIncorrectPassword
	}
	return nil
}

func (s *BlogService) ListPosts(ctx context.Context) ([]models.Post, error) {
	var (
		gen       int64
		cacheable bool
	)
	if s.feed != nil {
		cached, ok, err := s.feed.Get(ctx)
		if err != nil {
			zap.L().Warn("feed cache read failed", zap.Error(err))
		}
		if ok {
			return cached, nil
		}

		gen, err = s.feed.Generation(ctx)
		if err != nil {
			zap.L().Warn("feed cache generation read failed", zap.Error(err))
		}
		cacheable = err == nil
	}

	list, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	if cacheable {
		if err := s.feed.Set(ctx, list, gen); err != nil && !errors.Is(err, cache.ErrStaleFeed) {
			zap.L().Warn("feed cache write failed", zap.Error(err))
		}
	}
	return list, nil
}

func (s *BlogService) CreatePost(ctx context.Context, in models.NewPost) (*models.Post, error) {
	post := &models.Post{
		ID:       s.newID(),
		Title:    in.Title,
		Content:  in.Content,
		Author:   in.Author,
		Password: in.Password,
		Date:     s.now().UTC().Truncate(time.Microsecond),
	}
	if err := s.repo.Insert(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.invalidateFeed(ctx)
	return post, nil
}

func (s *BlogService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}
	return post, nil
}

func (s *BlogService) UpdatePost(ctx context.Context, id, password, content string) error {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if err := CheckPassword(post, password); err != nil {
		return err
	}

	if err := s.repo.UpdateContent(ctx, id, content); err != nil {
		return fmt.Errorf("update post %s: %w", id, err)
	}

	s.invalidateFeed(ctx)
	return nil
}

func (s *BlogService) DeletePost(ctx context.Context, id, password string) error {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if err := CheckPassword(post, password); err != nil {
		return err
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}

	s.invalidateFeed(ctx)
	return nil
}

// Ping reports whether the store is reachable.
func (s *BlogService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *BlogService) invalidateFeed(ctx context.Context) {
	if s.feed == nil {
		return
	}
	if err := s.feed.Invalidate(ctx); err != nil {
		zap.L().Warn("feed cache invalidate failed", zap.Error(err))
	}
}
