package entities

import "time"

type ClothingItem struct {
	ID        string     `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"index" json:"user_id"`
	Name      string     `json:"name"`
	Type      string     `json:"type"` // free-form: "wool sweater", "jeans", "ankle boots"
	Color     string     `json:"color"`
	Material  string     `json:"material,omitempty"`
	Season    []string   `gorm:"serializer:json" json:"season"` // spring|summer|autumn|winter|all
	Occasions []string   `gorm:"serializer:json" json:"occasions"`
	LastWorn  *time.Time `json:"last_worn,omitempty"`
	TimesWorn int        `json:"times_worn"`
	ImageURL  string     `json:"image_url,omitempty"`
	SourceURL string     `json:"source_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
