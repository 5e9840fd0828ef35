package repository

import (
	"context"
	"time"

	"olivia/entities"
)

type UsageRepository interface {
	Record(ctx context.Context, ev *entities.OutfitUsageEvent) error
	// Since returns events at or after since whose action_type is not in exclude.
	Since(ctx context.Context, since time.Time, exclude []string) ([]entities.OutfitUsageEvent, error)
}
