package posts

import (
	"context"
	"errors"

	"github.com/yourEmotion/blogs/internal/common"
	"github.com/yourEmotion/blogs/internal/models"
	"gorm.io/gorm"
)

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) ListAll(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	if err := r.db.WithContext(ctx).Order("date desc").Find(&posts).Error; err != nil {
		return nil, common.NewStoreError("list", err)
	}
	return posts, nil
}

func (r *GormRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.NewStoreError("get", err)
	}
	return &post, nil
}

func (r *GormRepository) Insert(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return common.NewStoreError("insert", err)
	}
	return nil
}

func (r *GormRepository) UpdateContent(ctx context.Context, id, content string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Update("content", content)
	if res.Error != nil {
		return common.NewStoreError("update", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *GormRepository) DeleteByID(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Post{})
	if res.Error != nil {
		return common.NewStoreError("delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *GormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return common.NewStoreError("ping", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return common.NewStoreError("ping", err)
	}
	return nil
}
