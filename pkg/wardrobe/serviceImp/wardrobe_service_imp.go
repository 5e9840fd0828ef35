package serviceImp

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"olivia/entities"
	"olivia/pkg/wardrobe/repository"
	"olivia/pkg/wardrobe/service"
)

type wardrobeSvc struct {
	r       repository.ClothingRepository
	fetcher *PageFetcher
}

func NewWardrobeService(r repository.ClothingRepository, f *PageFetcher) service.WardrobeService {
	return &wardrobeSvc{r: r, fetcher: f}
}

func (s *wardrobeSvc) Add(ctx context.Context, it *entities.ClothingItem) (*entities.ClothingItem, error) {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	it.Season = normalizeSeasons(it.Season)
	if err := s.r.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *wardrobeSvc) Get(ctx context.Context, id, uid string) (*entities.ClothingItem, error) {
	return s.r.FindByID(ctx, id, uid)
}

func (s *wardrobeSvc) List(ctx context.Context, uid string) ([]entities.ClothingItem, error) {
	return s.r.ListByUser(ctx, uid)
}

func (s *wardrobeSvc) ImportFromURL(ctx context.Context, uid string, in service.Import) (*entities.ClothingItem, error) {
	page, err := s.fetcher.Fetch(ctx, in.URL)
	if err != nil {
		return nil, err
	}
	typ := strings.TrimSpace(in.Type)
	if typ == "" {
		typ = page.GuessType()
	}
	it := &entities.ClothingItem{
		UserID:    uid,
		Name:      page.Title,
		Type:      typ,
		Color:     page.Color,
		Material:  page.Material,
		Season:    []string{"all"},
		ImageURL:  page.Image,
		SourceURL: in.URL,
	}
	return s.Add(ctx, it)
}

var seasons = map[string]string{
	"spring": "spring", "summer": "summer", "autumn": "autumn", "fall": "autumn",
	"winter": "winter", "all": "all",
}

func normalizeSeasons(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, s := range in {
		if v, ok := seasons[strings.ToLower(strings.TrimSpace(s))]; ok && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		out = append(out, "all")
	}
	return out
}
