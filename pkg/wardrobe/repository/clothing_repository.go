package repository

import (
	"context"

	"olivia/entities"
)

type ClothingRepository interface {
	Create(ctx context.Context, it *entities.ClothingItem) error
	FindByID(ctx context.Context, id, uid string) (*entities.ClothingItem, error)
	// ListByUser returns items oldest first.
	ListByUser(ctx context.Context, uid string) ([]entities.ClothingItem, error)
}
