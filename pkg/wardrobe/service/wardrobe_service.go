package service

import (
	"context"
	"errors"

	"olivia/entities"
)

var (
	ErrDomainNotAllowed = errors.New("domain not allowed")
	ErrUnsupportedPage  = errors.New("unsupported page")
)

// Import describes a product page turned into a wardrobe item.
type Import struct {
	URL  string
	Type string // overrides the guessed type when set
}

type WardrobeService interface {
	Add(ctx context.Context, it *entities.ClothingItem) (*entities.ClothingItem, error)
	Get(ctx context.Context, id, uid string) (*entities.ClothingItem, error)
	List(ctx context.Context, uid string) ([]entities.ClothingItem, error)
	ImportFromURL(ctx context.Context, uid string, in Import) (*entities.ClothingItem, error)
}
