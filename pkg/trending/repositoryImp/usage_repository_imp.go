package repositoryImp

import (
	"context"
	"time"

	"gorm.io/gorm"

	"olivia/entities"
	"olivia/pkg/trending/repository"
)

type usageRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.UsageRepository { return &usageRepo{db} }

func (r *usageRepo) Record(ctx context.Context, ev *entities.OutfitUsageEvent) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	} else {
		ev.CreatedAt = ev.CreatedAt.UTC()
	}
	return r.db.WithContext(ctx).Create(ev).Error
}

func (r *usageRepo) Since(ctx context.Context, since time.Time, exclude []string) ([]entities.OutfitUsageEvent, error) {
	q := r.db.WithContext(ctx).Where("created_at >= ?", since.UTC())
	if len(exclude) > 0 {
		q = q.Where("action_type NOT IN ?", exclude)
	}
	var out []entities.OutfitUsageEvent
	if err := q.Order("created_at ASC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
