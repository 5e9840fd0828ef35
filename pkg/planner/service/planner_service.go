package service

import (
	"context"
	"errors"
	"time"

	"olivia/entities"
	"olivia/pkg/planner/types"
)

var ErrEmptyWardrobe = errors.New("wardrobe is empty")

type PlannerService interface {
	// Plan builds seven drafts starting at start (index 0). Nothing is saved.
	Plan(uid string, items []entities.ClothingItem, loc types.Location, start time.Time) ([]types.DayPlan, error)
	// GenerateWeekly loads the user's wardrobe and plans from today.
	GenerateWeekly(ctx context.Context, uid string, loc types.Location) ([]types.DayPlan, error)
	// SaveDraft inserts one draft; a failed insert is logged and reported as ok=false.
	SaveDraft(ctx context.Context, uid string, draft entities.Outfit) (id string, ok bool)
	// SaveWeek saves each draft independently, no rollback on partial failure.
	SaveWeek(ctx context.Context, uid string, drafts []entities.Outfit) []types.SaveResult
}
