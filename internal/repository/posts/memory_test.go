package posts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourEmotion/blogs/internal/common"
	"github.com/yourEmotion/blogs/internal/models"
)

func TestMemory_ListAllNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Insert(ctx, &models.Post{ID: id, Date: base.Add(time.Duration(i) * time.Minute)}))
	}

	got, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestMemory_ListAllEmpty(t *testing.T) {
	got, err := NewMemoryRepository().ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	require.NoError(t, repo.Insert(ctx, &models.Post{ID: "a", Content: "one"}))

	p, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	p.Content = "mutated"

	again, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "one", again.Content)
}

func TestMemory_InsertDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	require.NoError(t, repo.Insert(ctx, &models.Post{ID: "a"}))

	err := repo.Insert(ctx, &models.Post{ID: "a"})
	assert.True(t, common.IsStoreError(err))
}

func TestMemory_UpdateOnlyContent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	orig := models.Post{ID: "a", Title: "T", Content: "old", Author: "A", Password: "p", Date: time.Now().UTC()}
	require.NoError(t, repo.Insert(ctx, &orig))

	require.NoError(t, repo.UpdateContent(ctx, "a", "new"))

	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	want := orig
	want.Content = "new"
	assert.Equal(t, want, *got)
}

func TestMemory_MissingRows(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.GetByID(ctx, "ghost")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.ErrorIs(t, repo.UpdateContent(ctx, "ghost", "x"), common.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteByID(ctx, "ghost"), common.ErrNotFound)
}

func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	require.NoError(t, repo.Insert(ctx, &models.Post{ID: "a"}))

	require.NoError(t, repo.DeleteByID(ctx, "a"))
	_, err := repo.GetByID(ctx, "a")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
