package repositoryImp

import (
	"context"

	"olivia/entities"
	"olivia/pkg/outfit/repository"

	"gorm.io/gorm"
)

type outfitRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.OutfitRepository { return &outfitRepo{db} }

func (r *outfitRepo) Create(ctx context.Context, o *entities.Outfit) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *outfitRepo) FindByID(ctx context.Context, id, uid string) (*entities.Outfit, error) {
	var o entities.Outfit
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, uid).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *outfitRepo) FindByIDs(ctx context.Context, ids []string) ([]entities.Outfit, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []entities.Outfit
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *outfitRepo) ListByUser(ctx context.Context, uid string) ([]entities.Outfit, error) {
	var out []entities.Outfit
	if err := r.db.WithContext(ctx).Where("user_id = ?", uid).Order("date_added DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *outfitRepo) SetFavorite(ctx context.Context, id, uid string, favorite bool) error {
	res := r.db.WithContext(ctx).Model(&entities.Outfit{}).
		Where("id = ? AND user_id = ?", id, uid).
		Update("favorite", favorite)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *outfitRepo) IncrementWorn(ctx context.Context, id, uid string) error {
	res := r.db.WithContext(ctx).Model(&entities.Outfit{}).
		Where("id = ? AND user_id = ?", id, uid).
		UpdateColumn("times_worn", gorm.Expr("times_worn + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
