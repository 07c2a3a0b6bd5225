// Package web serves the blog as server-rendered HTML.
package web

import (
	"context"
	"net/http"

	"github.com/yourEmotion/blogs/internal/models"
)

type PostService interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	CreatePost(ctx context.Context, in models.NewPost) (*models.Post, error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
	UpdatePost(ctx context.Context, id, password, content string) error
	DeletePost(ctx context.Context, id, password string) error
}

type App struct {
	posts    PostService
	renderer *Renderer
	healthz  http.Handler
}

// NewApp builds the HTML application. healthz may be nil, in which case
// /healthz is not routed.
func NewApp(posts PostService, healthz http.Handler) (*App, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	return &App{posts: posts, renderer: renderer, healthz: healthz}, nil
}
