package entities

import "time"

const (
	ActionTried              = "tried"
	ActionLiked              = "liked"
	ActionShared             = "shared"
	ActionSeasonalSuggestion = "seasonal-suggestion"
	ActionSeasonalCache      = "seasonal-cache"
)

// OutfitUsageEvent is append-only; rows are never updated or deleted.
type OutfitUsageEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OutfitID   string    `gorm:"index" json:"outfit_id"`
	UserID     string    `gorm:"index" json:"user_id"`
	ActionType string    `gorm:"index" json:"action_type"`
	CreatedAt  time.Time `gorm:"index" json:"timestamp"`
}
