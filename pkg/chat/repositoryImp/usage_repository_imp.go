package repositoryImp

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"olivia/entities"
	"olivia/pkg/chat/repository"
)

type chatUsageRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ChatUsageRepository { return &chatUsageRepo{db} }

func (r *chatUsageRepo) IsPremium(ctx context.Context, uid string) (bool, error) {
	var p entities.UserProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", uid).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.Premium, nil
}

func (r *chatUsageRepo) SetPremium(ctx context.Context, uid string, premium bool) error {
	p := entities.UserProfile{UserID: uid, Premium: premium}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"premium", "updated_at"}),
	}).Create(&p).Error
}

func (r *chatUsageRepo) Count(ctx context.Context, uid, day string) (int, error) {
	var u entities.ChatUsage
	err := r.db.WithContext(ctx).Where("user_id = ? AND day = ?", uid, day).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return u.Count, nil
}

func (r *chatUsageRepo) Reserve(ctx context.Context, uid, day string, limit int) (int, bool, error) {
	db := r.db.WithContext(ctx)
	now := time.Now().UTC()
	row := entities.ChatUsage{UserID: uid, Day: day, UpdatedAt: now}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "day"}},
		DoNothing: true,
	}).Create(&row).Error; err != nil {
		return 0, false, err
	}
	// the count check and the bump are one statement, so concurrent callers
	// cannot both take the last slot
	res := db.Model(&entities.ChatUsage{}).
		Where("user_id = ? AND day = ? AND `count` < ?", uid, day, limit).
		Updates(map[string]interface{}{"count": gorm.Expr("`count` + 1"), "updated_at": now})
	if res.Error != nil {
		return 0, false, res.Error
	}
	n, err := r.Count(ctx, uid, day)
	return n, res.RowsAffected == 1, err
}

func (r *chatUsageRepo) Release(ctx context.Context, uid, day string) error {
	return r.db.WithContext(ctx).Model(&entities.ChatUsage{}).
		Where("user_id = ? AND day = ? AND `count` > 0", uid, day).
		UpdateColumn("count", gorm.Expr("`count` - 1")).Error
}
