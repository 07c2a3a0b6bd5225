// Package posts stores blog posts. Every operation reports a missing row as
// common.ErrNotFound and any other store failure as *common.StoreError.
package posts

import (
	"context"

	"github.com/yourEmotion/blogs/internal/models"
)

type Repository interface {
	// ListAll returns every post, newest first.
	ListAll(ctx context.Context) ([]models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Insert(ctx context.Context, post *models.Post) error
	// UpdateContent overwrites only the content column.
	UpdateContent(ctx context.Context, id, content string) error
	DeleteByID(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
