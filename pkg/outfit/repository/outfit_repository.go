package repository

import (
	"context"

	"olivia/entities"
)

type OutfitRepository interface {
	Create(ctx context.Context, o *entities.Outfit) error
	FindByID(ctx context.Context, id, uid string) (*entities.Outfit, error)
	// FindByIDs ignores ownership; order of the result is unspecified.
	FindByIDs(ctx context.Context, ids []string) ([]entities.Outfit, error)
	ListByUser(ctx context.Context, uid string) ([]entities.Outfit, error)
	SetFavorite(ctx context.Context, id, uid string, favorite bool) error
	IncrementWorn(ctx context.Context, id, uid string) error
}
