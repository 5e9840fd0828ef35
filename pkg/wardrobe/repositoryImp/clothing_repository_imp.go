package repositoryImp

import (
	"context"

	"olivia/entities"
	"olivia/pkg/wardrobe/repository"

	"gorm.io/gorm"
)

type clothingRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ClothingRepository { return &clothingRepo{db} }

func (r *clothingRepo) Create(ctx context.Context, it *entities.ClothingItem) error {
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *clothingRepo) FindByID(ctx context.Context, id, uid string) (*entities.ClothingItem, error) {
	var it entities.ClothingItem
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, uid).First(&it).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *clothingRepo) ListByUser(ctx context.Context, uid string) ([]entities.ClothingItem, error) {
	var out []entities.ClothingItem
	if err := r.db.WithContext(ctx).Where("user_id = ?", uid).Order("created_at ASC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
