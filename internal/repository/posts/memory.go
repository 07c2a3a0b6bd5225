package posts

import (
	"context"
	"sort"
	"sync"

	"github.com/yourEmotion/blogs/internal/common"
	"github.com/yourEmotion/blogs/internal/models"
)

// MemoryRepository keeps posts in a map. It is used with DB_DRIVER=memory
// and in tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	posts map[string]models.Post
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{posts: make(map[string]models.Post)}
}

func (r *MemoryRepository) ListAll(_ context.Context) ([]models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &p, nil
}

func (r *MemoryRepository) Insert(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.posts[post.ID]; exists {
		return common.NewStoreError("insert", errDuplicateID)
	}
	r.posts[post.ID] = *post
	return nil
}

func (r *MemoryRepository) UpdateContent(_ context.Context, id, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok {
		return common.ErrNotFound
	}
	p.Content = content
	r.posts[id] = p
	return nil
}

func (r *MemoryRepository) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *MemoryRepository) Ping(_ context.Context) error {
	return nil
}
