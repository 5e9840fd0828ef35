package entities

import "time"

type Outfit struct {
	ID              string     `gorm:"primaryKey" json:"id"`
	UserID          string     `gorm:"index" json:"user_id"`
	Name            string     `json:"name"`
	Items           []string   `gorm:"serializer:json" json:"items"` // clothing item ids, display order
	Occasions       []string   `gorm:"serializer:json" json:"occasions"`
	Season          []string   `gorm:"serializer:json" json:"season"`
	Favorite        bool       `json:"favorite"`
	TimesWorn       int        `json:"times_worn"`
	DateAdded       time.Time  `json:"date_added"`
	PersonalityTags []string   `gorm:"serializer:json" json:"personality_tags"`
	Colors          []string   `gorm:"serializer:json" json:"colors"`
	PlannedFor      *time.Time `json:"planned_for,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}
