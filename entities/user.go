package entities

import "time"

type UserProfile struct {
	UserID    string `gorm:"primaryKey" json:"user_id"`
	Premium   bool   `json:"premium"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ChatUsage counts chat messages per user per UTC day ("2006-01-02").
type ChatUsage struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"uniqueIndex:idx_chat_usage_user_day"`
	Day       string `gorm:"uniqueIndex:idx_chat_usage_user_day"`
	Count     int
	UpdatedAt time.Time
}
